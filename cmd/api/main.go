package main

import (
	"fmt"
	"net/http"

	"github.com/workforcehq/payroll-backend-go/internal/config"
	"github.com/workforcehq/payroll-backend-go/internal/domain/salary"
	appHTTP "github.com/workforcehq/payroll-backend-go/internal/handler/http"
	"github.com/workforcehq/payroll-backend-go/internal/pkg/database"
	"github.com/workforcehq/payroll-backend-go/internal/pkg/jwt"
	"github.com/workforcehq/payroll-backend-go/internal/repository/postgresql"
	salaryService "github.com/workforcehq/payroll-backend-go/internal/service/salary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	policy := salary.Policy{
		DailyRateDivisor: cfg.Payroll.DailyRateDivisor,
		TaxRate:          cfg.Payroll.TaxRate,
	}
	transitions := salary.AllowAllTransitions
	if cfg.Payroll.StrictTransitions {
		transitions = salary.DefaultTransitions
	}

	salarySvc := salaryService.NewSalaryService(
		db,
		salaryRepo,
		employeeRepo,
		attendanceRepo,
		leaveRepo,
		policy,
		transitions,
	)

	salaryHandler := appHTTP.NewSalaryHandler(salarySvc)

	router := appHTTP.NewRouter(JWTService, salaryHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
