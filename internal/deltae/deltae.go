// internal/deltae/deltae.go
//
// Perceptual color differences (Delta E) between Lab coordinates.
//
//   - CIEDE2000 drives all scoring: Colordle reports similarity as
//     100 - ΔE2000.
//   - CIE76 and CIE94 exist for the diagnostic comparison report.
package deltae

import (
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/5plinkK/ColordleSolver/internal/colorspace"
)

// Metric measures the distance between two Lab colors.
type Metric func(a, b colorspace.Lab) float64

// CIE76 is the Euclidean distance in Lab, delegated to go-colorful.
func CIE76(a, b colorspace.Lab) float64 {
	return toColorful(a).DistanceCIE76(toColorful(b)) * 100
}

// CIEDE2000 implements the CIE 2000 color difference with unit weighting
// factors (kL = kC = kH = 1).
func CIEDE2000(lab1, lab2 colorspace.Lab) float64 {
	l1, a1, b1 := lab1.L, lab1.A, lab1.B
	l2, a2, b2 := lab2.L, lab2.A, lab2.B

	// Chroma-dependent stretch of the a* axis.
	c1 := math.Hypot(a1, b1)
	c2 := math.Hypot(a2, b2)
	cBar7 := math.Pow((c1+c2)/2, 7)
	g := 0.5 * (1 - math.Sqrt(cBar7/(cBar7+pow25To7)))

	a1p := a1 * (1 + g)
	a2p := a2 * (1 + g)
	c1p := math.Hypot(a1p, b1)
	c2p := math.Hypot(a2p, b2)
	h1p := hueAngle(a1p, b1)
	h2p := hueAngle(a2p, b2)

	dLp := l2 - l1
	dCp := c2p - c1p

	var dhp float64
	if c1p*c2p != 0 {
		dhp = h2p - h1p
		switch {
		case dhp > 180:
			dhp -= 360
		case dhp < -180:
			dhp += 360
		}
	}
	dHp := 2 * math.Sqrt(c1p*c2p) * math.Sin(rad(dhp/2))

	lBarP := (l1 + l2) / 2
	cBarP := (c1p + c2p) / 2

	hBarP := h1p + h2p
	if c1p*c2p != 0 {
		switch {
		case math.Abs(h1p-h2p) <= 180:
			hBarP /= 2
		case hBarP < 360:
			hBarP = (hBarP + 360) / 2
		default:
			hBarP = (hBarP - 360) / 2
		}
	}

	t := 1 -
		0.17*math.Cos(rad(hBarP-30)) +
		0.24*math.Cos(rad(2*hBarP)) +
		0.32*math.Cos(rad(3*hBarP+6)) -
		0.20*math.Cos(rad(4*hBarP-63))

	dTheta := 30 * math.Exp(-math.Pow((hBarP-275)/25, 2))
	cBarP7 := math.Pow(cBarP, 7)
	rc := 2 * math.Sqrt(cBarP7/(cBarP7+pow25To7))
	lm := (lBarP - 50) * (lBarP - 50)
	sl := 1 + 0.015*lm/math.Sqrt(20+lm)
	sc := 1 + 0.045*cBarP
	sh := 1 + 0.015*cBarP*t
	// Rotation term for the blue region.
	rt := -math.Sin(rad(2*dTheta)) * rc

	fl := dLp / sl
	fc := dCp / sc
	fh := dHp / sh
	return math.Sqrt(fl*fl + fc*fc + fh*fh + rt*fc*fh)
}

// CIE94 is the graphic-arts CIE94 difference, delegated to go-colorful.
// The Lab inputs pass through go-colorful's own D65 matrices, not the
// color-convert constants ToLab uses; the loss is far below report precision.
func CIE94(a, b colorspace.Lab) float64 {
	return toColorful(a).DistanceCIE94(toColorful(b)) * 100
}

// toColorful maps a Lab coordinate onto go-colorful, which keeps Lab in
// hundredths and reports distances on the same scale.
func toColorful(c colorspace.Lab) colorful.Color {
	return colorful.Lab(c.L/100, c.A/100, c.B/100)
}

const pow25To7 = 6103515625 // 25^7

func hueAngle(a, b float64) float64 {
	if a == 0 && b == 0 {
		return 0
	}
	h := math.Atan2(b, a) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	return h
}

func rad(deg float64) float64 { return deg * math.Pi / 180 }

var registry = map[string]Metric{
	"ciede2000": CIEDE2000,
	"cie76":     CIE76,
	"cie94":     CIE94,
}

// Default is the metric used for scoring.
const Default = "ciede2000"

// Lookup returns the metric registered under name.
func Lookup(name string) (Metric, bool) {
	m, ok := registry[name]
	return m, ok
}

// Names lists the registered metric names in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
