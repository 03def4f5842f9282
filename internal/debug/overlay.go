package debug

import (
	"fmt"
	"math"
	"os"
	"runtime"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"blackhole/internal/blackhole"
	"blackhole/internal/engine3D/camera"
)

// Status is one frame's worth of what the overlay shows.
type Status struct {
	Params     blackhole.Parameters
	ModeBlend  float64
	Mode       camera.Mode
	Position   [3]float64
	Distance   float64
	AutoRotate bool
	Debris     int
	Stars      int
	Profile    blackhole.Profile
	Remote     string
	Message    string
}

type Section struct {
	Header string
	Lines  []string
}

// Sections formats s. It has no raylib dependency so it can be tested.
func Sections(s Status, fps float64, mem *runtime.MemStats) []Section {
	p := s.Params
	mode := "dark"
	if p.LightMode {
		mode = "light"
	}

	sections := []Section{
		{"Timing:", []string{
			fmt.Sprintf("FPS: %.1f", fps),
			fmt.Sprintf("Heap Alloc: %.2f MB", float64(mem.HeapAlloc)/1024/1024),
		}},
		{"Simulation:", []string{
			fmt.Sprintf("Rotation [ ]: %.2f", p.RotationSpeed),
			fmt.Sprintf("Bloom - =: %.2f", p.BloomIntensity),
			fmt.Sprintf("Lensing ; ': %.2f", p.LensingStrength),
			fmt.Sprintf("Disk: %.2f  Temperature: %.2f", p.DiskBrightness, p.Temperature),
			fmt.Sprintf("Mode L: %s (blend %.3f)", mode, s.ModeBlend),
		}},
		{"Camera:", []string{
			fmt.Sprintf("State: %s", s.Mode),
			fmt.Sprintf("Position: %.1f, %.1f, %.1f", s.Position[0], s.Position[1], s.Position[2]),
			fmt.Sprintf("Distance: %.1f", s.Distance),
			fmt.Sprintf("Auto Rotate A: %v", s.AutoRotate),
		}},
		{"Scene:", []string{
			fmt.Sprintf("Debris: %d  Stars: %d", s.Debris, s.Stars),
			fmt.Sprintf("Constrained: %v  Pixel Ratio: %.2f", s.Profile.Constrained, s.Profile.PixelRatio),
		}},
	}
	if s.Remote != "" {
		sections = append(sections, Section{"Remote:", []string{s.Remote}})
	}
	if s.Message != "" {
		sections = append(sections, Section{"", []string{s.Message}})
	}
	return sections
}

type DebugOverlay struct {
	Visible bool

	fontHeight int
	lineHeight int
	width      int
	font       rl.Font

	lastUpdateTime time.Time
	frameCount     int
	fps            float64
	memStats       runtime.MemStats
}

func NewDebugOverlay() *DebugOverlay {
	monitor := rl.GetCurrentMonitor()
	scale := math.Max(1.0, float64(rl.GetMonitorHeight(monitor))/1080.0)

	d := &DebugOverlay{
		Visible:        true,
		fontHeight:     int(16 * scale),
		lineHeight:     int(22 * scale),
		width:          int(340 * scale),
		lastUpdateTime: time.Now(),
	}

	fontPaths := []string{
		"/usr/share/fonts/TTF/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/ttf-dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/liberation/LiberationSans-Regular.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	}
	for _, path := range fontPaths {
		if _, err := os.Stat(path); err == nil {
			d.font = rl.LoadFontEx(path, 64, nil, 0)
			rl.SetTextureFilter(d.font.Texture, rl.FilterBilinear)
			break
		}
	}

	return d
}

func (d *DebugOverlay) Update() {
	d.frameCount++
	now := time.Now()
	if now.Sub(d.lastUpdateTime) >= time.Second {
		d.fps = float64(d.frameCount) / now.Sub(d.lastUpdateTime).Seconds()
		d.frameCount = 0
		d.lastUpdateTime = now
		runtime.ReadMemStats(&d.memStats)
	}
}

func (d *DebugOverlay) Draw(s Status) {
	if !d.Visible {
		return
	}

	sections := Sections(s, d.fps, &d.memStats)
	lines := 0
	for _, sec := range sections {
		lines += len(sec.Lines) + 1
	}

	x, y := int32(10), int32(10)
	rl.DrawRectangle(x-5, y-5, int32(d.width), int32(lines*d.lineHeight+10), rl.NewColor(0, 0, 0, 150))

	for _, sec := range sections {
		if sec.Header != "" {
			d.DrawText(sec.Header, x, y, int32(d.fontHeight), rl.NewColor(255, 200, 120, 255))
			y += int32(d.lineHeight)
		}
		for _, line := range sec.Lines {
			d.DrawText(line, x+10, y, int32(d.fontHeight), rl.White)
			y += int32(d.lineHeight)
		}
	}
}

func (d *DebugOverlay) DrawText(text string, x, y int32, fontSize int32, color rl.Color) {
	if d.font.BaseSize > 0 {
		rl.DrawTextEx(d.font, text, rl.NewVector2(float32(x), float32(y)), float32(fontSize), 1, color)
	} else {
		rl.DrawText(text, x, y, fontSize, color)
	}
}

func (d *DebugOverlay) Unload() {
	if d.font.BaseSize > 0 {
		rl.UnloadFont(d.font)
	}
}
