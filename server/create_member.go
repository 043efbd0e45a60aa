package server

import (
	"context"
	"os"

	"member-profile/config"
	"member-profile/database"
	"member-profile/models"

	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// CreateMember inserts one member row, for seeding a fresh database.
func CreateMember(cfg config.Config, fields models.MemberFields) {
	logger.Init(logger.LoggerConfig{
		CallerKey:  "file",
		TimeKey:    "timestamp",
		CallerSkip: 1,
	})

	if fields.Name == "" || fields.IDNo == "" || fields.Pwd == "" {
		logger.Error("nm, idno and pwd are required")
		os.Exit(1)
	}

	dbConn := database.InitializeDatabase(cfg)
	defer dbConn.Close()

	iid, err := database.NewMemberStore(dbConn).Create(context.Background(), fields)
	if err != nil {
		logger.Error("Failed to create member", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("Member created", zap.Int64("iid", iid), zap.String("nm", fields.Name))
}
