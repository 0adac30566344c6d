package common

import (
	"context"

	"go.uber.org/zap"

	"github.com/Freeeeeet/easestay_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/easestay_bot/internal/model"
	"github.com/Freeeeeet/easestay_bot/internal/service"
	"github.com/Freeeeeet/easestay_bot/internal/view"
)

// ensureRooms загружает номера, если кэш ещё пуст (сервер был недоступен при старте)
func ensureRooms(ctx context.Context, h *callbacktypes.Handler) error {
	if h.RoomCache.Loaded() {
		return nil
	}
	_, err := h.RoomCache.Refresh(ctx)
	return err
}

// VisibleRooms - номера для гостей или ошибка загрузки
func VisibleRooms(ctx context.Context, h *callbacktypes.Handler) view.Section[model.Room] {
	if err := ensureRooms(ctx, h); err != nil {
		h.Logger.Warn("Rooms are not loaded", zap.Error(err))
		return view.SectionOf[model.Room](nil, err)
	}
	return view.SectionOf(h.RoomCache.VisibleToGuests(), nil)
}

// dropRejectedSession завершает сессию, если сервер отклонил токен
func dropRejectedSession(ctx context.Context, h *callbacktypes.Handler, telegramID int64, err error) bool {
	if !IsSessionRejected(err) {
		return false
	}
	if logoutErr := h.SessionService.Invalidate(ctx, telegramID); logoutErr != nil {
		h.Logger.Error("Failed to invalidate session",
			zap.Int64("telegram_id", telegramID),
			zap.Error(logoutErr))
	}
	return true
}

// LandingScreen - публичный экран
func LandingScreen(ctx context.Context, h *callbacktypes.Handler) view.Screen {
	return view.Landing(VisibleRooms(ctx, h))
}

// HomeScreen строит главный экран по роли пользователя
func HomeScreen(ctx context.Context, h *callbacktypes.Handler, telegramID int64, session *model.Session, page int) view.Screen {
	if session == nil {
		return LandingScreen(ctx, h)
	}

	switch session.Role {
	case model.RoleAdmin:
		return AdminScreen(ctx, h, telegramID, session, page)
	case model.RoleStaff:
		return StaffScreen(ctx, h, telegramID, session)
	default:
		bookings, err := h.BookingService.ListOwn(ctx, session)
		if err != nil {
			h.Logger.Warn("Failed to load own bookings",
				zap.Int64("telegram_id", telegramID),
				zap.Error(err))
		}
		if dropRejectedSession(ctx, h, telegramID, err) {
			return LandingScreen(ctx, h)
		}
		return view.GuestHome(session, VisibleRooms(ctx, h), view.SectionOf(bookings, err))
	}
}

// AdminScreen - панель администратора с текущим фильтром пользователя
func AdminScreen(ctx context.Context, h *callbacktypes.Handler, telegramID int64, session *model.Session, page int) view.Screen {
	filter := h.StateManager.GetFilter(telegramID)
	if filter == "" {
		filter = service.FilterAll
	}

	data := view.AdminHomeData{
		Session: session,
		Filter:  filter,
		Page:    page,
	}

	if err := ensureRooms(ctx, h); err != nil {
		data.Rooms = view.SectionOf[model.Room](nil, err)
	} else {
		data.Rooms = view.SectionOf(h.RoomCache.ByStatus(filter), nil)
		data.Stats = h.RoomCache.Stats()
	}

	bookings, err := h.BookingService.ListAll(ctx, session)
	if err != nil {
		h.Logger.Warn("Failed to load all bookings",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
	}
	if dropRejectedSession(ctx, h, telegramID, err) {
		return LandingScreen(ctx, h)
	}
	data.Bookings = view.SectionOf(bookings, err)

	return view.AdminHome(data)
}

// StaffScreen - задачи на уборку и заселённые номера
func StaffScreen(ctx context.Context, h *callbacktypes.Handler, telegramID int64, session *model.Session) view.Screen {
	var tasks view.Section[model.Room]
	if err := ensureRooms(ctx, h); err != nil {
		tasks = view.SectionOf[model.Room](nil, err)
	} else {
		tasks = view.SectionOf(h.RoomCache.CleaningTasks(), nil)
	}

	booked, err := h.BookingService.ListBookedRooms(ctx, session)
	if err != nil {
		h.Logger.Warn("Failed to load booked rooms",
			zap.Int64("telegram_id", telegramID),
			zap.String("role", string(session.Role)),
			zap.Error(err))
	}
	if dropRejectedSession(ctx, h, telegramID, err) {
		return LandingScreen(ctx, h)
	}

	return view.StaffHome(session, tasks, view.SectionOf(booked, err))
}
