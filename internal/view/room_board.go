package view

import (
	"bytes"
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/Freeeeeet/easestay_bot/internal/model"
	"github.com/Freeeeeet/easestay_bot/internal/service"
)

// FontStyle определяет стиль шрифта
type FontStyle string

const (
	FontStyleDefault FontStyle = "" // Regular
	FontStyleBold    FontStyle = "bold"
)

// Константы размеров и отступов
const (
	boardWidth       = 1200
	boardHeaderH     = 110
	boardLegendH     = 60
	boardPadding     = 24
	boardColumns     = 5
	tileHeight       = 120.0
	tileGap          = 16.0
	tileBorderRadius = 10.0
	shadowOffset     = 3.0
	tileTextMaxLen   = 22
)

// Константы шрифтов
const (
	titleFontSize   = 30.0
	subtitleSize    = 18.0
	tileNumberSize  = 26.0
	tileTextSize    = 15.0
	legendFontSize  = 14.0
	badgeFontSize   = 13.0
	badgeWidth      = 84.0
	badgeHeight     = 22.0
	legendBoxWidth  = 20.0
	legendBoxHeight = 14.0
)

// Цветовая схема
var (
	boardBgColor   = color.RGBA{245, 246, 248, 255}
	boardTextColor = color.RGBA{80, 85, 90, 230}
	subtitleColor  = color.RGBA{110, 115, 120, 220}

	tileAvailableColor   = color.RGBA{133, 193, 85, 220}
	tileOccupiedColor    = color.RGBA{255, 182, 193, 255}
	tileMaintenanceColor = color.RGBA{255, 205, 112, 230}
	tileDefaultColor     = color.RGBA{220, 220, 220, 200}
	tileTextColor        = color.RGBA{20, 24, 28, 230}
	tileShadowColor      = color.RGBA{0, 0, 0, 20}

	badgeColor     = color.RGBA{66, 133, 244, 235}
	badgeTextColor = color.RGBA{255, 255, 255, 255}
)

var (
	fontsMu     sync.Mutex
	cachedFonts = make(map[FontStyle]*opentype.Font)
)

// loadFont загружает шрифт Go указанного стиля или использует basicfont как fallback
func loadFont(dc *gg.Context, size float64, style ...FontStyle) {
	fontStyle := FontStyleDefault
	if len(style) > 0 {
		fontStyle = style[0]
	}

	fontData := goregular.TTF
	if fontStyle == FontStyleBold {
		fontData = gobold.TTF
	}

	fontsMu.Lock()
	parsed, ok := cachedFonts[fontStyle]
	if !ok {
		var err error
		parsed, err = opentype.Parse(fontData)
		if err != nil {
			fontsMu.Unlock()
			dc.SetFontFace(basicfont.Face7x13)
			return
		}
		cachedFonts[fontStyle] = parsed
	}
	fontsMu.Unlock()

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		// fallback к встроенному шрифту
		dc.SetFontFace(basicfont.Face7x13)
		return
	}
	dc.SetFontFace(face)
}

// RenderRoomBoard рисует доску номеров: плитка на номер, цвет по статусу,
// отметка об уборке и заполняемость в заголовке
func RenderRoomBoard(rooms []model.Room, generatedAt time.Time) ([]byte, error) {
	rows := (len(rooms) + boardColumns - 1) / boardColumns
	if rows == 0 {
		rows = 1
	}
	height := boardHeaderH + boardLegendH + boardPadding*2 + int(float64(rows)*(tileHeight+tileGap))

	dc := gg.NewContext(boardWidth, height)
	dc.SetColor(boardBgColor)
	dc.Clear()

	drawBoardHeader(dc, service.Stats(rooms), generatedAt)

	tileWidth := (float64(boardWidth-boardPadding*2) - tileGap*(boardColumns-1)) / boardColumns
	for i, room := range rooms {
		col := i % boardColumns
		row := i / boardColumns
		x := float64(boardPadding) + float64(col)*(tileWidth+tileGap)
		y := float64(boardHeaderH) + float64(row)*(tileHeight+tileGap)
		drawRoomTile(dc, room, x, y, tileWidth)
	}

	if len(rooms) == 0 {
		loadFont(dc, subtitleSize)
		dc.SetColor(subtitleColor)
		dc.DrawStringAnchored("Номеров нет", boardWidth/2, float64(boardHeaderH)+tileHeight/2, 0.5, 0.5)
	}

	drawBoardLegend(dc, float64(height-boardLegendH))

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode room board: %w", err)
	}
	return buf.Bytes(), nil
}

// drawBoardHeader рисует заголовок и сводку
func drawBoardHeader(dc *gg.Context, stats service.RoomStats, generatedAt time.Time) {
	loadFont(dc, titleFontSize, FontStyleBold)
	dc.SetColor(boardTextColor)
	dc.DrawStringAnchored("Номера отеля", boardPadding, 44, 0, 0)

	summary := fmt.Sprintf(
		"Всего: %d   Свободно: %d   Занято: %d   Обслуживание: %d   Уборка: %d   Заполняемость: %d%%",
		stats.Total, stats.Available, stats.Occupied, stats.Maintenance, stats.NeedsCleaning, stats.OccupancyRate,
	)
	loadFont(dc, subtitleSize)
	dc.SetColor(subtitleColor)
	dc.DrawStringAnchored(summary, boardPadding, 78, 0, 0)

	if !generatedAt.IsZero() {
		stamp := generatedAt.Format("02.01.2006 15:04")
		w, _ := dc.MeasureString(stamp)
		dc.DrawStringAnchored(stamp, float64(boardWidth-boardPadding)-w, 44, 0, 0)
	}
}

// drawRoomTile рисует плитку одного номера
func drawRoomTile(dc *gg.Context, room model.Room, x, y, width float64) {
	fill := getTileColor(room.Status)

	// Тень
	dc.SetColor(tileShadowColor)
	dc.DrawRoundedRectangle(x+shadowOffset, y+shadowOffset, width, tileHeight, tileBorderRadius)
	dc.Fill()

	dc.SetColor(fill)
	dc.DrawRoundedRectangle(x, y, width, tileHeight, tileBorderRadius)
	dc.Fill()

	// Рамка
	dc.SetColor(darkenColor(fill, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x, y, width, tileHeight, tileBorderRadius)
	dc.Stroke()

	number := room.RoomNumber
	if number == "" {
		number = "—"
	}
	loadFont(dc, tileNumberSize, FontStyleBold)
	dc.SetColor(tileTextColor)
	dc.DrawStringAnchored(number, x+12, y+34, 0, 0)

	loadFont(dc, tileTextSize)
	dc.DrawStringAnchored(truncate(room.Name, tileTextMaxLen), x+12, y+62, 0, 0)
	dc.DrawStringAnchored(roomStatusLabel(room.Status), x+12, y+86, 0, 0)

	if room.NeedsCleaning {
		bx := x + width - badgeWidth - 8
		by := y + tileHeight - badgeHeight - 8
		dc.SetColor(badgeColor)
		dc.DrawRoundedRectangle(bx, by, badgeWidth, badgeHeight, badgeHeight/2)
		dc.Fill()

		loadFont(dc, badgeFontSize, FontStyleBold)
		dc.SetColor(badgeTextColor)
		dc.DrawStringAnchored("Уборка", bx+badgeWidth/2, by+badgeHeight/2, 0.5, 0.35)
	}
}

// drawBoardLegend рисует легенду внизу
func drawBoardLegend(dc *gg.Context, top float64) {
	items := []struct {
		Label string
		Clr   color.Color
	}{
		{"Свободен", tileAvailableColor},
		{"Занят", tileOccupiedColor},
		{"Обслуживание", tileMaintenanceColor},
		{"Требует уборки", badgeColor},
	}

	x := float64(boardPadding)
	y := top + boardLegendH/2 - legendBoxHeight/2
	for _, item := range items {
		dc.SetColor(item.Clr)
		dc.DrawRoundedRectangle(x, y, legendBoxWidth, legendBoxHeight, 3)
		dc.Fill()

		loadFont(dc, legendFontSize)
		dc.SetColor(boardTextColor)
		dc.DrawStringAnchored(item.Label, x+legendBoxWidth+8, y+legendBoxHeight/2+1, 0, 0.2)
		w, _ := dc.MeasureString(item.Label)
		x += legendBoxWidth + 8 + w + 32
	}
}

// getTileColor возвращает цвет плитки по статусу номера
func getTileColor(status model.RoomStatus) color.RGBA {
	switch status {
	case model.RoomStatusAvailable:
		return tileAvailableColor
	case model.RoomStatusOccupied:
		return tileOccupiedColor
	case model.RoomStatusMaintenance:
		return tileMaintenanceColor
	default:
		return tileDefaultColor
	}
}

func roomStatusLabel(status model.RoomStatus) string {
	switch status {
	case model.RoomStatusAvailable:
		return "Свободен"
	case model.RoomStatusOccupied:
		return "Занят"
	case model.RoomStatusMaintenance:
		return "Обслуживание"
	default:
		return string(status)
	}
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// truncate обрезает строку по рунам
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
