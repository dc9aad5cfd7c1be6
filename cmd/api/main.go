package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/orgdesk/orgdesk-backend-go/internal/config"
	"github.com/orgdesk/orgdesk-backend-go/internal/domain/attendance"
	appHTTP "github.com/orgdesk/orgdesk-backend-go/internal/handler/http"
	"github.com/orgdesk/orgdesk-backend-go/internal/pkg/cron"
	"github.com/orgdesk/orgdesk-backend-go/internal/pkg/database"
	"github.com/orgdesk/orgdesk-backend-go/internal/pkg/jwt"
	"github.com/orgdesk/orgdesk-backend-go/internal/repository/postgresql"
	attendanceService "github.com/orgdesk/orgdesk-backend-go/internal/service/attendance"
	exceptionService "github.com/orgdesk/orgdesk-backend-go/internal/service/exception"
	leaveService "github.com/orgdesk/orgdesk-backend-go/internal/service/leave"
	statsService "github.com/orgdesk/orgdesk-backend-go/internal/service/stats"
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

	shiftStart, err := attendance.ParseClock(cfg.Attendance.ShiftStart)
	if err != nil {
		log.Fatal("Invalid ATTENDANCE_SHIFT_START: ", err)
	}
	shiftEnd, err := attendance.ParseClock(cfg.Attendance.ShiftEnd)
	if err != nil {
		log.Fatal("Invalid ATTENDANCE_SHIFT_END: ", err)
	}
	defaultPolicy := attendance.ShiftPolicy{
		Start:               shiftStart,
		End:                 shiftEnd,
		GraceMinutes:        cfg.Attendance.GraceMinutes,
		HalfDayAfterMinutes: cfg.Attendance.HalfDayAfterMinutes,
		AbsentAfterMinutes:  cfg.Attendance.AbsentAfterMinutes,
	}

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	exceptionRepo := postgresql.NewExceptionRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	statsRepo := postgresql.NewStatsRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	attendanceSvc := attendanceService.NewAttendanceService(
		db,
		attendanceRepo,
		employeeRepo,
		exceptionRepo,
		leaveRepo,
		defaultPolicy,
		cfg.Attendance.DefaultTimezone,
	)
	exceptionSvc := exceptionService.NewExceptionService(db, exceptionRepo, attendanceRepo)
	leaveSvc := leaveService.NewLeaveService(db, leaveRepo, attendanceRepo, employeeRepo)
	statsSvc := statsService.NewStatsService(db, statsRepo, attendanceRepo, employeeRepo, exceptionRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	exceptionHandler := appHTTP.NewExceptionHandler(exceptionSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	statsHandler := appHTTP.NewStatsHandler(statsSvc)

	router := appHTTP.NewRouter(
		JWTService,
		attendanceHandler,
		exceptionHandler,
		leaveHandler,
		statsHandler,
	)

	scheduler := cron.NewScheduler()
	attendanceJobs := cron.NewAttendanceJobs(attendanceSvc, cfg.Attendance.SweepInterval)
	attendanceJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
