package compose

import (
	"image/color"
	"testing"

	"github.com/matzehuels/regiongen/pkg/errors"
	"github.com/matzehuels/regiongen/pkg/geom"
	"github.com/matzehuels/regiongen/pkg/voronoi"
)

var (
	red   = color.NRGBA{R: 200, A: 255}
	blue  = color.NRGBA{B: 200, A: 255}
	green = color.NRGBA{G: 200, A: 255}
)

// diagonal builds the 4×4 two-seed fixture with both regions in cluster 0.
func diagonal(t *testing.T) Input {
	t.Helper()
	regions := []voronoi.Region{
		{ID: 0, Centre: geom.Pt(0, 0), Colour: red, Cluster: voronoi.NoCluster},
		{ID: 1, Centre: geom.Pt(3, 3), Colour: blue, Cluster: voronoi.NoCluster},
	}
	g, err := voronoi.NewGrid(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	if err := voronoi.Assign(regions, g, 1); err != nil {
		t.Fatal(err)
	}
	clusters := []voronoi.Cluster{{ID: 0, Members: []int{0, 1}, Colour: green}}
	return Input{Grid: g, Regions: regions, Clusters: clusters}
}

func TestComposeRegionMode(t *testing.T) {
	in := diagonal(t)
	img, err := Compose(in, Options{Mode: ModeRegion})
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Fatalf("bounds = %v, want 4x4", b)
	}
	if got := img.NRGBAAt(1, 1); got != red {
		t.Errorf("(1,1) = %v, want region 0 colour", got)
	}
	if got := img.NRGBAAt(2, 2); got != blue {
		t.Errorf("(2,2) = %v, want region 1 colour", got)
	}
}

func TestComposeClusterMode(t *testing.T) {
	in := diagonal(t)
	img, err := Compose(in, Options{Mode: ModeCluster})
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := img.NRGBAAt(x, y); got != green {
				t.Errorf("(%d,%d) = %v, want cluster colour", x, y, got)
			}
		}
	}
}

func TestComposePatternMode(t *testing.T) {
	in := diagonal(t)
	img, err := Compose(in, Options{Mode: ModePattern})
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}

	tests := []struct {
		x, y int
		want color.NRGBA
	}{
		{0, 1, green}, // even x, odd y
		{2, 3, green},
		{1, 1, red}, // odd x falls through
		{0, 0, red}, // even y falls through
		{3, 3, blue},
	}
	for _, tt := range tests {
		if got := img.NRGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}

	// Odd cluster ids paint every even row.
	in.Clusters[0].ID = 1
	img, _ = Compose(in, Options{Mode: ModePattern})
	if got := img.NRGBAAt(1, 2); got != green {
		t.Errorf("odd cluster (1,2) = %v, want cluster colour", got)
	}
	if got := img.NRGBAAt(1, 1); got != red {
		t.Errorf("odd cluster (1,1) = %v, want region colour", got)
	}
}

func TestComposeGradientMode(t *testing.T) {
	regions := []voronoi.Region{
		{ID: 0, Centre: geom.Pt(0, 0), Colour: red},
		{ID: 1, Centre: geom.Pt(19, 0), Colour: blue},
	}
	g, err := voronoi.NewGrid(20, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := voronoi.Assign(regions, g, 1); err != nil {
		t.Fatal(err)
	}
	c := voronoi.Cluster{ID: 0, Members: []int{0, 1}, Colour: green, Spine: []geom.Point{geom.Pt(0, 0)}}
	if err := voronoi.ComputeDistances(&c, regions, g, 1); err != nil {
		t.Fatal(err)
	}
	if c.MaxDistance != 19 {
		t.Fatalf("MaxDistance = %d, want 19", c.MaxDistance)
	}

	img, err := Compose(Input{Grid: g, Regions: regions, Clusters: []voronoi.Cluster{c}}, Options{Mode: ModeGradient})
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}

	tests := []struct {
		x     int
		green uint8
	}{
		{0, 40},   // band 0 × 0.2
		{3, 60},   // band 1 × 0.3
		{6, 80},   // band 2 × 0.4
		{11, 100}, // band 3 × 0.5
		{19, 120}, // clamped to band 4 × 0.6
	}
	for _, tt := range tests {
		got := img.NRGBAAt(tt.x, 0)
		if got.G != tt.green || got.R != 0 || got.B != 0 || got.A != 255 {
			t.Errorf("x=%d: %v, want G=%d", tt.x, got, tt.green)
		}
	}
}

func TestBand(t *testing.T) {
	tests := []struct {
		d, max int
		want   int
	}{
		{0, 10, 0},
		{1, 10, 0},
		{2, 10, 1},
		{9, 10, 4},
		{10, 10, 4},
		{3, 4, 0}, // band width 0
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := Band(tt.d, tt.max); got != tt.want {
			t.Errorf("Band(%d, %d) = %d, want %d", tt.d, tt.max, got, tt.want)
		}
	}
}

func TestShade(t *testing.T) {
	c := color.NRGBA{R: 100, G: 200, B: 50, A: 128}
	got := Shade(c, 0.5)
	want := color.NRGBA{R: 50, G: 100, B: 25, A: 128}
	if got != want {
		t.Errorf("Shade() = %v, want %v", got, want)
	}
}

func TestComposeMarkers(t *testing.T) {
	in := diagonal(t)
	img, err := Compose(in, Options{Mode: ModeCluster, Markers: true, MarkerRadius: 2})
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	black := color.NRGBA{A: 255}

	for _, p := range []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(0, 1), geom.Pt(1, 1), geom.Pt(3, 3), geom.Pt(2, 2), geom.Pt(2, 3)} {
		if got := img.NRGBAAt(p.X, p.Y); got != black {
			t.Errorf("%v = %v, want marker", p, got)
		}
	}
	if got := img.NRGBAAt(2, 0); got != green {
		t.Errorf("(2,0) = %v, outside radius should keep cluster colour", got)
	}
}

func TestComposeSpineLines(t *testing.T) {
	in := diagonal(t)
	in.Clusters[0].Spine = []geom.Point{geom.Pt(1, 2), geom.Pt(9, 9)}
	img, err := Compose(in, Options{Mode: ModeRegion, SpineLines: true})
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	if got := img.NRGBAAt(1, 2); got != spineColour {
		t.Errorf("(1,2) = %v, want spine colour", got)
	}
}

func TestComposeErrors(t *testing.T) {
	in := diagonal(t)
	if _, err := Compose(in, Options{Mode: "plaid"}); !errors.Is(err, errors.ErrCodeInvalidMode) {
		t.Errorf("unknown mode error = %v, want INVALID_MODE", err)
	}

	g, _ := voronoi.NewGrid(2, 2)
	if _, err := Compose(Input{Grid: g}, Options{}); !errors.Is(err, errors.ErrCodePrecondition) {
		t.Errorf("unassigned grid error = %v, want PRECONDITION_VIOLATION", err)
	}
	if _, err := Compose(Input{}, Options{}); !errors.Is(err, errors.ErrCodePrecondition) {
		t.Errorf("nil grid error = %v, want PRECONDITION_VIOLATION", err)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"region", false},
		{"cluster", false},
		{"pattern", false},
		{"gradient", false},
		{"Region", true},
		{"", true},
	}
	for _, tt := range tests {
		_, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}
