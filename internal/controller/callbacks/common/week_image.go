package common

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

	"github.com/Freeeeeet/gym_booking_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/gym_booking_bot/internal/model"
	"github.com/Freeeeeet/gym_booking_bot/internal/schedule"
)

// FontStyle определяет стиль шрифта
type FontStyle string

const (
	FontStyleDefault FontStyle = "" // Regular
	FontStyleBold    FontStyle = "bold"
)

// Константы размеров и отступов
const (
	imageWidth       = 1200
	headerHeight     = 110
	rowHeight        = 90
	legendHeight     = 60
	leftLabelsWidth  = 130
	cellPadding      = 6.0
	slotBorderRadius = 6.0
	shadowOffset     = 3.0
	maxCaptionRunes  = 16
)

// Константы шрифтов
const (
	titleFontSize      = 26.0
	dayFontSize        = 22.0
	windowFontSize     = 17.0
	slotCountFontSize  = 20.0
	slotCaptionSize    = 14.0
	legendItemFontSize = 14.0
)

// Цветовая схема
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{80, 85, 90, 220}
	windowColor    = color.RGBA{110, 115, 120, 200}
	gridLineColor  = color.NRGBA{150, 150, 150, 255}
	todayBgColor   = color.NRGBA{255, 99, 71, 90}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{228, 228, 228, 255}
	legendTxtColor = color.RGBA{70, 74, 78, 220}

	slotFreeColor    = color.RGBA{133, 193, 85, 220}
	slotPartialColor = color.RGBA{250, 210, 100, 230}
	slotFullColor    = color.RGBA{255, 182, 193, 255}
	slotClosedColor  = color.RGBA{158, 158, 158, 200}
	slotMineColor    = color.RGBA{110, 170, 240, 230}
	slotPastColor    = color.RGBA{205, 208, 212, 200}
	slotTextColor    = color.RGBA{20, 24, 28, 230}
	slotFullText     = color.RGBA{120, 40, 50, 255}
	slotShadowColor  = color.RGBA{0, 0, 0, 20}
)

// SlotCell один слот на недельной сетке
type SlotCell struct {
	Date      string
	WindowID  int
	Booked    int
	Capacity  int
	Available bool
	Mine      bool   // текущий студент записан
	Past      bool   // занятие уже закончилось
	Caption   string // имя тренера или другая подпись
}

// WeekImage данные для отрисовки недели
type WeekImage struct {
	Days  []string // понедельник..пятница
	Cells []SlotCell
	Today string
}

var (
	fontsOnce   sync.Once
	parsedFonts map[FontStyle]*opentype.Font
)

// loadFont выставляет шрифт Go указанного размера, при ошибке - basicfont
func loadFont(dc *gg.Context, size float64, style FontStyle) {
	fontsOnce.Do(func() {
		parsedFonts = make(map[FontStyle]*opentype.Font)
		if f, err := opentype.Parse(goregular.TTF); err == nil {
			parsedFonts[FontStyleDefault] = f
		}
		if f, err := opentype.Parse(gobold.TTF); err == nil {
			parsedFonts[FontStyleBold] = f
		}
	})

	parsed, ok := parsedFonts[style]
	if !ok {
		parsed, ok = parsedFonts[FontStyleDefault]
	}
	if ok {
		face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			dc.SetFontFace(face)
			return
		}
	}
	dc.SetFontFace(basicfont.Face7x13)
}

// GenerateWeekImage рисует сетку рабочей недели: дни по горизонтали,
// окна расписания по вертикали
func GenerateWeekImage(week WeekImage) ([]byte, error) {
	if len(week.Days) == 0 {
		return nil, fmt.Errorf("week has no days")
	}

	windows := schedule.Daily()
	height := headerHeight + len(windows)*rowHeight + legendHeight
	dayWidth := float64(imageWidth-leftLabelsWidth) / float64(len(week.Days))

	dc := gg.NewContext(imageWidth, height)
	dc.SetColor(bgColor)
	dc.Clear()

	drawHeader(dc, week.Days)
	drawWindowLabels(dc, windows)

	cells := groupCells(week.Cells)
	for dayIndex, date := range week.Days {
		x := float64(leftLabelsWidth) + float64(dayIndex)*dayWidth
		drawDayColumn(dc, date, x, dayWidth, dayIndex, date == week.Today, len(windows))
		for rowIndex, window := range windows {
			y := float64(headerHeight + rowIndex*rowHeight)
			drawCell(dc, cells[cellKey(date, window.ID)], x, y, dayWidth)
		}
	}

	drawLegend(dc, float64(headerHeight+len(windows)*rowHeight))

	return encodeImage(dc)
}

func cellKey(date string, windowID int) string {
	return fmt.Sprintf("%s#%d", date, windowID)
}

// groupCells группирует слоты по дню и окну
func groupCells(cells []SlotCell) map[string][]SlotCell {
	grouped := make(map[string][]SlotCell)
	for _, c := range cells {
		key := cellKey(c.Date, c.WindowID)
		grouped[key] = append(grouped[key], c)
	}
	return grouped
}

// drawHeader рисует заголовок с названием месяца и диапазоном дат
func drawHeader(dc *gg.Context, days []string) {
	title := formatting.FormatWeekRange(days)
	if first, err := time.Parse(model.DateLayout, days[0]); err == nil {
		title = formatting.GetMonthName(first.Month()) + "  " + title
	}

	loadFont(dc, titleFontSize, FontStyleBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, float64(imageWidth)/2, float64(headerHeight)/4, 0.5, 0.5)
}

// drawWindowLabels рисует колонку с окнами расписания слева
func drawWindowLabels(dc *gg.Context, windows []model.ScheduleSlot) {
	loadFont(dc, windowFontSize, FontStyleDefault)
	dc.SetColor(windowColor)

	for i, w := range windows {
		y := float64(headerHeight + i*rowHeight)
		dc.DrawStringAnchored(w.StartTime, float64(leftLabelsWidth)-12, y+rowHeight*0.3, 1, 0.5)
		dc.DrawStringAnchored(w.EndTime, float64(leftLabelsWidth)-12, y+rowHeight*0.55, 1, 0.5)
		dc.DrawStringAnchored(w.Label, float64(leftLabelsWidth)-12, y+rowHeight*0.8, 1, 0.5)
	}
}

// drawDayColumn рисует фон дня, заголовок и линии сетки
func drawDayColumn(dc *gg.Context, date string, x, dayWidth float64, dayIndex int, isToday bool, rows int) {
	top := float64(headerHeight)
	columnHeight := float64(rows * rowHeight)

	switch {
	case isToday:
		dc.SetColor(todayBgColor)
	case dayIndex%2 == 0:
		dc.SetColor(evenDayColor)
	default:
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, top, dayWidth, columnHeight)
	dc.Fill()

	loadFont(dc, dayFontSize, FontStyleBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(formatting.FormatDayButton(date), x+dayWidth/2, top-18, 0.5, 0.5)

	dc.SetLineWidth(0.3)
	dc.SetColor(gridLineColor)
	for r := 0; r <= rows; r++ {
		y := top + float64(r*rowHeight)
		dc.DrawLine(x, y, x+dayWidth, y)
		dc.Stroke()
	}
}

// drawCell рисует слоты одного окна, деля ширину ячейки поровну
func drawCell(dc *gg.Context, entries []SlotCell, x, y, dayWidth float64) {
	if len(entries) == 0 {
		return
	}

	width := (dayWidth - cellPadding) / float64(len(entries))
	for i, entry := range entries {
		drawSlot(dc, entry, x+cellPadding+float64(i)*width, y+cellPadding, width-cellPadding, rowHeight-2*cellPadding)
	}
}

// drawSlot рисует один слот
func drawSlot(dc *gg.Context, slot SlotCell, x, y, w, h float64) {
	fill := slotColor(slot)

	// Тень
	dc.SetColor(slotShadowColor)
	dc.DrawRoundedRectangle(x+shadowOffset, y+shadowOffset, w, h, slotBorderRadius)
	dc.Fill()

	// Основной слот
	dc.SetColor(fill)
	dc.DrawRoundedRectangle(x, y, w, h, slotBorderRadius)
	dc.Fill()

	// Рамка
	dc.SetColor(darkenColor(fill, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x, y, w, h, slotBorderRadius)
	dc.Stroke()

	txtColor := slotTextColor
	switch {
	case slot.Past:
		txtColor = windowColor
	case slot.Available && slot.Booked >= slot.Capacity:
		txtColor = slotFullText
	}

	loadFont(dc, slotCountFontSize, FontStyleBold)
	dc.SetColor(txtColor)
	dc.DrawStringAnchored(fmt.Sprintf("%d/%d", slot.Booked, slot.Capacity), x+w/2, y+h*0.35, 0.5, 0.5)

	if slot.Caption != "" && w > 40 {
		loadFont(dc, slotCaptionSize, FontStyleDefault)
		dc.DrawStringAnchored(truncateRunes(slot.Caption, maxCaptionRunes), x+w/2, y+h*0.72, 0.5, 0.5)
	}
}

// slotColor цвет слота по его заполненности
func slotColor(slot SlotCell) color.RGBA {
	switch {
	case slot.Mine:
		return slotMineColor
	case slot.Past:
		return slotPastColor
	case !slot.Available:
		return slotClosedColor
	case slot.Booked >= slot.Capacity:
		return slotFullColor
	case slot.Booked > 0:
		return slotPartialColor
	default:
		return slotFreeColor
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

// drawLegend рисует легенду под сеткой
func drawLegend(dc *gg.Context, top float64) {
	legendItems := []struct {
		Label string
		Clr   color.Color
	}{
		{"Свободно", slotFreeColor},
		{"Есть места", slotPartialColor},
		{"Мест нет", slotFullColor},
		{"Закрыт", slotClosedColor},
		{"Моя запись", slotMineColor},
		{"Прошло", slotPastColor},
	}

	boxW := 22.0
	boxH := 16.0
	liX := float64(leftLabelsWidth)
	liY := top + (legendHeight-boxH)/2

	loadFont(dc, legendItemFontSize, FontStyleDefault)
	for _, item := range legendItems {
		dc.SetColor(item.Clr)
		dc.DrawRoundedRectangle(liX, liY, boxW, boxH, 3)
		dc.Fill()

		dc.SetColor(legendTxtColor)
		dc.DrawStringAnchored(item.Label, liX+boxW+8, liY+boxH/2, 0, 0.5)
		labelW, _ := dc.MeasureString(item.Label)
		liX += boxW + 8 + labelW + 28
	}
}

// encodeImage кодирует изображение в PNG
func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
