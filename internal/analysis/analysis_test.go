package analysis

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/san-kum/ltisim/internal/dynamo"
	"github.com/san-kum/ltisim/internal/lti"
)

var doublePole = lti.New([]float64{1}, []float64{1, 2, 1})

func TestConvergenceRK4Order(t *testing.T) {
	rows, err := Convergence(context.Background(), doublePole, Hold(1), 5, []float64{0.2, 0.1}, "rk4")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if !math.IsNaN(rows[0].Order) {
		t.Errorf("first row order should be NaN, got %v", rows[0].Order)
	}
	if rows[0].Samples != 25 || rows[1].Samples != 50 {
		t.Errorf("unexpected sample counts %d, %d", rows[0].Samples, rows[1].Samples)
	}
	if rows[1].MaxError >= rows[0].MaxError {
		t.Errorf("error should shrink with dt: %g -> %g", rows[0].MaxError, rows[1].MaxError)
	}
	if rows[1].Order < 3.5 || rows[1].Order > 4.6 {
		t.Errorf("RK4 observed order %v, expected about 4", rows[1].Order)
	}
	if rows[1].RMSError > rows[1].MaxError {
		t.Errorf("RMS %g exceeds max %g", rows[1].RMSError, rows[1].MaxError)
	}
}

func TestConvergenceEulerOrder(t *testing.T) {
	rows, err := Convergence(context.Background(), doublePole, Hold(1), 5, []float64{0.02, 0.01}, "euler")
	if err != nil {
		t.Fatal(err)
	}
	if rows[1].Order < 0.8 || rows[1].Order > 1.2 {
		t.Errorf("Euler observed order %v, expected about 1", rows[1].Order)
	}
}

func TestConvergenceErrors(t *testing.T) {
	ctx := context.Background()
	if _, err := Convergence(ctx, doublePole, Hold(1), 0, []float64{0.1}, "rk4"); err == nil {
		t.Error("expected error for zero duration")
	}
	if _, err := Convergence(ctx, doublePole, Hold(1), 1, []float64{-0.1}, "rk4"); !errors.Is(err, dynamo.ErrInvalidStepSize) {
		t.Errorf("expected ErrInvalidStepSize, got %v", err)
	}
	if _, err := Convergence(ctx, doublePole, Hold(1), 1, []float64{0.1}, "leapfrog"); err == nil {
		t.Error("expected error for unknown integrator")
	}
	bad := lti.New([]float64{1}, []float64{0, 1})
	if _, err := Convergence(ctx, bad, Hold(1), 1, []float64{0.1}, "rk4"); !errors.Is(err, lti.ErrInvalidSystem) {
		t.Errorf("expected ErrInvalidSystem, got %v", err)
	}
}

func TestCompareIntegrators(t *testing.T) {
	input := make([]float64, 500)
	for i := range input {
		input[i] = 1
	}

	cmp, err := CompareIntegrators(context.Background(), doublePole, input, 0.01, []string{"rk4", "euler"})
	if err != nil {
		t.Fatal(err)
	}
	if len(cmp) != 2 {
		t.Fatalf("expected 2 comparisons, got %d", len(cmp))
	}
	if cmp[0].Integrator != "rk4" || cmp[1].Integrator != "euler" {
		t.Errorf("order not preserved: %s, %s", cmp[0].Integrator, cmp[1].Integrator)
	}
	if cmp[0].MaxDiff != 0 {
		t.Errorf("baseline diff should be 0, got %g", cmp[0].MaxDiff)
	}
	if cmp[1].MaxDiff <= 0 || cmp[1].MaxDiff > 0.05 {
		t.Errorf("euler diff %g out of range", cmp[1].MaxDiff)
	}
	if _, ok := cmp[0].Result.Metrics["peak"]; !ok {
		t.Error("default metrics not recorded")
	}

	if _, err := CompareIntegrators(context.Background(), doublePole, input, 0.01, []string{"nope"}); err == nil {
		t.Error("expected error for unknown integrator")
	}
}

func TestPhasePortrait(t *testing.T) {
	input := make([]float64, 300)
	for i := range input {
		input[i] = 1
	}
	res, err := lti.SimulateContext(context.Background(), doublePole, input, 0.02)
	if err != nil {
		t.Fatal(err)
	}

	p, err := PhasePortrait(res, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Points) != len(input) {
		t.Errorf("expected %d points, got %d", len(input), len(p.Points))
	}
	if p.Points[0] != (Point{}) {
		t.Errorf("first point should be the rest state, got %+v", p.Points[0])
	}

	art := PhasePortraitToASCII(p, 40, 12)
	lines := strings.Split(strings.TrimSuffix(art, "\n"), "\n")
	if len(lines) != 12 {
		t.Fatalf("expected 12 lines, got %d", len(lines))
	}
	for _, l := range lines {
		if n := utf8.RuneCountInString(l); n != 40 {
			t.Errorf("line width %d, expected 40", n)
		}
	}
	if !strings.ContainsRune(art, '•') {
		t.Error("no trajectory points drawn")
	}

	if _, err := PhasePortrait(res, 0, 2); !errors.Is(err, dynamo.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
	if _, err := PhasePortrait(&dynamo.Result{}, 0, 1); err == nil {
		t.Error("expected error for empty run")
	}
	if PhasePortraitToASCII(nil, 10, 10) != "" {
		t.Error("nil portrait should render empty")
	}
}

func TestPhasePortraitDivergedRun(t *testing.T) {
	inf, nan := math.Inf(1), math.NaN()
	cases := []struct {
		name   string
		states []dynamo.State
		dots   bool
	}{
		{"huge finite", []dynamo.State{{1e308, 1}, {-1e308, -1}}, true},
		{"max float", []dynamo.State{{math.MaxFloat64, math.MaxFloat64}, {-math.MaxFloat64, -math.MaxFloat64}}, true},
		{"infinite", []dynamo.State{{inf, 1}, {0, -1}}, true},
		{"all nan", []dynamo.State{{nan, nan}, {nan, nan}}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := PhasePortrait(&dynamo.Result{States: tc.states}, 0, 1)
			if err != nil {
				t.Fatal(err)
			}
			art := PhasePortraitToASCII(p, 20, 5)
			lines := strings.Split(strings.TrimSuffix(art, "\n"), "\n")
			if len(lines) != 5 {
				t.Fatalf("expected 5 lines, got %d", len(lines))
			}
			for _, l := range lines {
				if n := utf8.RuneCountInString(l); n != 20 {
					t.Errorf("line width %d, expected 20", n)
				}
			}
			if got := strings.ContainsRune(art, '•'); got != tc.dots {
				t.Errorf("points drawn = %v, want %v", got, tc.dots)
			}
		})
	}
}
