package certificate

import (
	"bytes"
	"fmt"
	"time"

	"github.com/fogleman/gg"
)

// Data carries everything rendered onto a certificate.
type Data struct {
	LearnerName    string
	CourseTitle    string
	Instructor     string
	CompletionDate time.Time
}

// Renderer produces certificate images.
type Renderer interface {
	Render(data Data) ([]byte, error)
}

const (
	canvasWidth  = 1200
	canvasHeight = 850
)

// ImageRenderer draws a PNG certificate with gg. A fontPath is required;
// gg has no built-in scalable font.
type ImageRenderer struct {
	fontPath string
}

func NewImageRenderer(fontPath string) *ImageRenderer {
	return &ImageRenderer{fontPath: fontPath}
}

func (r *ImageRenderer) Render(data Data) ([]byte, error) {
	dc := gg.NewContext(canvasWidth, canvasHeight)

	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Border
	dc.SetRGB255(30, 64, 124)
	dc.SetLineWidth(12)
	dc.DrawRectangle(30, 30, canvasWidth-60, canvasHeight-60)
	dc.Stroke()
	dc.SetLineWidth(2)
	dc.DrawRectangle(50, 50, canvasWidth-100, canvasHeight-100)
	dc.Stroke()

	if err := dc.LoadFontFace(r.fontPath, 56); err != nil {
		return nil, fmt.Errorf("failed to load certificate font: %w", err)
	}
	dc.SetRGB255(30, 64, 124)
	dc.DrawStringAnchored("Certificate of Completion", canvasWidth/2, 170, 0.5, 0.5)

	if err := dc.LoadFontFace(r.fontPath, 28); err != nil {
		return nil, fmt.Errorf("failed to load certificate font: %w", err)
	}
	dc.SetRGB255(60, 60, 60)
	dc.DrawStringAnchored("This certifies that", canvasWidth/2, 280, 0.5, 0.5)

	if err := dc.LoadFontFace(r.fontPath, 48); err != nil {
		return nil, fmt.Errorf("failed to load certificate font: %w", err)
	}
	dc.SetRGB255(20, 20, 20)
	dc.DrawStringAnchored(data.LearnerName, canvasWidth/2, 360, 0.5, 0.5)

	if err := dc.LoadFontFace(r.fontPath, 28); err != nil {
		return nil, fmt.Errorf("failed to load certificate font: %w", err)
	}
	dc.SetRGB255(60, 60, 60)
	dc.DrawStringAnchored("has successfully completed the course", canvasWidth/2, 440, 0.5, 0.5)

	if err := dc.LoadFontFace(r.fontPath, 40); err != nil {
		return nil, fmt.Errorf("failed to load certificate font: %w", err)
	}
	dc.SetRGB255(30, 64, 124)
	dc.DrawStringAnchored(data.CourseTitle, canvasWidth/2, 520, 0.5, 0.5)

	if err := dc.LoadFontFace(r.fontPath, 24); err != nil {
		return nil, fmt.Errorf("failed to load certificate font: %w", err)
	}
	dc.SetRGB255(60, 60, 60)
	dc.DrawStringAnchored(fmt.Sprintf("Instructor: %s", data.Instructor), canvasWidth/2, 610, 0.5, 0.5)
	dc.DrawStringAnchored(data.CompletionDate.Format("January 2, 2006"), canvasWidth/2, 660, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode certificate: %w", err)
	}
	return buf.Bytes(), nil
}
