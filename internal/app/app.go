// Package app 组装两个进程共用的依赖：DB、会话存储、JWT、邮件、各用例
package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"go-task-manager/internal/core/auth"
	"go-task-manager/internal/core/config"
	"go-task-manager/internal/core/database"
	"go-task-manager/internal/core/kv"
	"go-task-manager/internal/core/logger"
	"go-task-manager/internal/core/mail"
	"go-task-manager/internal/domain"
	"go-task-manager/internal/feature/avatar"
	"go-task-manager/internal/repo"
	"go-task-manager/internal/service"
	"go-task-manager/internal/transport/http/router"
)

type App struct {
	Deps router.Deps
	DB   *gorm.DB
	RDB  *redis.Client // session.store=db 时为 nil
}

// NewLogger 按配置构建 zap（可选文件切割）
func NewLogger(c config.Log) (*zap.Logger, func()) {
	if c.File != "" {
		return logger.NewWithRotate(c.Level, c.JSON, c.File, c.MaxSizeMB, c.MaxBackups, c.MaxAgeDays, c.Compress)
	}
	return logger.New(c.Level, c.JSON)
}

// Build 打开 DB（按需迁移）并按 session.store 选择会话登记实现
func Build(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	log.Info("opening database", zap.String("driver", cfg.DB.Driver), zap.String("dsn", database.MaskDSN(cfg.DB.DSN)))
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		LogWriter:          logger.ToWriter(log.Named("gorm"), zapcore.WarnLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			return nil, fmt.Errorf("automigrate: %w", err)
		}
		log.Info("automigrate done")
	}

	a := &App{DB: db}
	users := repo.NewUserRepo(db)
	tasks := repo.NewTaskRepo(db)

	var sessions domain.SessionRegistry
	switch cfg.Session.Store {
	case "redis":
		rdb, err := kv.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.RDB = rdb
		sessions = repo.NewRedisSessionRepo(rdb, users, cfg.JWT.TTL())
	default:
		sessions = repo.NewSessionRepo(db)
	}
	log.Info("session store ready", zap.String("store", cfg.Session.Store))

	jwter := auth.NewJWTer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL())
	us := &service.UserService{
		Users:    users,
		Sessions: sessions,
		Tasks:    tasks,
		Tokens:   jwter,
		Mailer:   mail.New(cfg.Mail.SendGridAPIKey, cfg.Mail.From, cfg.Mail.FromName, log.Named("mail")),
		Avatars:  avatar.NewProcessor(cfg.Avatar.MaxBytes, cfg.Avatar.Width),
		Log:      log,
	}
	a.Deps = router.Deps{
		Log:          log,
		Tokens:       jwter,
		Sessions:     sessions,
		Users:        us,
		Tasks:        &service.TaskService{Tasks: tasks},
		Admin:        &service.AdminService{Users: users, Sessions: sessions, Accounts: us, Log: log},
		AllowOrigins: cfg.App.HTTP.AllowOrigins,
		MaxBodyBytes: 2 * cfg.Avatar.MaxBytes,
	}
	return a, nil
}

func (a *App) Close() {
	if a.RDB != nil {
		_ = a.RDB.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
