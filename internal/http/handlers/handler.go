package handlers

import (
	"spiceroute-services/internal/config"
	"spiceroute-services/internal/jsonstore"
	"spiceroute-services/internal/queue"
	"spiceroute-services/internal/storage"

	"go.uber.org/zap"
)

type Handler struct {
	Store   *jsonstore.Store
	Logger  *zap.Logger
	Config  config.Config
	Queue   *queue.Client
	Objects *storage.ObjectStore
}
