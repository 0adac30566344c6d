package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Freeeeeet/easestay_bot/internal/model"
	"github.com/Freeeeeet/easestay_bot/internal/view"
)

// Рисует доску номеров на тестовых данных и сохраняет в rooms.png
func main() {
	rooms := []model.Room{
		{ID: "1", Name: "Deluxe King", Type: "deluxe", Price: 4500, RoomNumber: "101", Capacity: 2, Status: model.RoomStatusAvailable},
		{ID: "2", Name: "Standard Twin", Type: "standard", Price: 2500, RoomNumber: "102", Capacity: 2, Status: model.RoomStatusOccupied},
		{ID: "3", Name: "Family Suite", Type: "suite", Price: 7800, RoomNumber: "201", Capacity: 4, Status: model.RoomStatusMaintenance},
		{ID: "4", Name: "Standard Queen", Type: "standard", Price: 2800, RoomNumber: "202", Capacity: 2, Status: model.RoomStatusAvailable, NeedsCleaning: true},
		{ID: "5", Name: "Executive Suite", Type: "suite", Price: 9900, RoomNumber: "301", Capacity: 3, Status: model.RoomStatusOccupied, NeedsCleaning: true},
		{ID: "6", Name: "Economy Single", Type: "economy", Price: 1500, RoomNumber: "302", Capacity: 1, Status: model.RoomStatusAvailable},
	}

	imageData, err := view.RenderRoomBoard(rooms, time.Now())
	if err != nil {
		fmt.Printf("Ошибка генерации изображения: %v\n", err)
		os.Exit(1)
	}

	filename := "rooms.png"
	if err := os.WriteFile(filename, imageData, 0644); err != nil {
		fmt.Printf("Ошибка сохранения файла: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Изображение успешно сохранено в %s\n", filename)
	fmt.Printf("🛏 Номеров: %d\n", len(rooms))
}
