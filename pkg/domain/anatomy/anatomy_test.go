package anatomy

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/fitglue/bodyhighlighter/pkg/domain/muscle"
)

func TestParseModel(t *testing.T) {
	tests := []struct {
		input   string
		want    Model
		wantErr bool
	}{
		{"anterior", Anterior, false},
		{"Front", Anterior, false},
		{" POSTERIOR ", Posterior, false},
		{"back", Posterior, false},
		{"sideways", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseModel(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownModel) {
					t.Errorf("ParseModel(%q) error = %v, want ErrUnknownModel", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseModel(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseModel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRegions_PointsFitCanvas(t *testing.T) {
	for _, m := range Models {
		rs := Regions(m)
		if len(rs) == 0 {
			t.Fatalf("%s: no regions", m)
		}
		for _, r := range rs {
			if len(r.Polygons) == 0 {
				t.Errorf("%s/%s: no polygons", m, r.Muscle)
			}
			for _, p := range r.Polygons {
				fields := strings.Fields(p)
				if len(fields) < 6 || len(fields)%2 != 0 {
					t.Errorf("%s/%s: malformed point list %q", m, r.Muscle, p)
					continue
				}
				for i, f := range fields {
					v, err := strconv.ParseFloat(f, 64)
					if err != nil {
						t.Errorf("%s/%s: bad coordinate %q", m, r.Muscle, f)
						continue
					}
					limit := 100.0
					if i%2 == 1 {
						limit = 200
					}
					if v < 0 || v > limit {
						t.Errorf("%s/%s: coordinate %v outside canvas", m, r.Muscle, v)
					}
				}
			}
		}
	}
}

func TestMuscles(t *testing.T) {
	front := Muscles(Anterior)
	back := Muscles(Posterior)

	has := func(ids []muscle.ID, id muscle.ID) bool {
		for _, v := range ids {
			if v == id {
				return true
			}
		}
		return false
	}

	if !has(front, muscle.Chest) || has(front, muscle.Hamstring) {
		t.Errorf("anterior muscles unexpected: %v", front)
	}
	if !has(back, muscle.Hamstring) || has(back, muscle.Chest) {
		t.Errorf("posterior muscles unexpected: %v", back)
	}

	// Every canonical muscle appears on at least one side
	for _, id := range muscle.All {
		if !has(front, id) && !has(back, id) {
			t.Errorf("muscle %s is not drawn on any model", id)
		}
	}
}

func TestRegions_UnknownModelFallsBackToPosterior(t *testing.T) {
	if len(Regions(Model("other"))) != len(Regions(Posterior)) {
		t.Error("expected posterior table for unknown model")
	}
}
