package handlers

import (
	"go.uber.org/zap"

	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/easestay_bot/internal/controller/state"
)

// Handlers содержит все зависимости для обработки команд и диалогов
type Handlers struct {
	deps         *callbacktypes.Handler
	stateManager *state.Manager
	logger       *zap.Logger
}

// NewHandlers создаёт новый обработчик команд.
// Сервисы общие с callback handlers, состояние диалогов - тоже.
func NewHandlers(
	deps *callbacktypes.Handler,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		deps:         deps,
		stateManager: stateManager,
		logger:       logger,
	}
}
