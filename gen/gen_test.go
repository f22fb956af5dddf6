package gen

import (
	"math/rand"
	"testing"

	"github.com/kr/pretty"
)

func TestUniform(t *testing.T) {
	cfg := Config{Count: 500, Range: 100, Size: 10}
	recs, err := Generate(Uniform, rand.New(rand.NewSource(1)), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != cfg.Count {
		t.Fatalf("got %d records", len(recs))
	}
	for i, r := range recs {
		if r.Key != i {
			t.Fatalf("record %d has key %d", i, r.Key)
		}
		if r.Rect.Top < 0 || r.Rect.Top >= cfg.Range || r.Rect.Left < 0 || r.Rect.Left >= cfg.Range {
			t.Fatalf("origin out of range: %s", r.Rect)
		}
		if r.Rect.Bottom != r.Rect.Top+cfg.Size || r.Rect.Right != r.Rect.Left+cfg.Size {
			t.Fatalf("wrong size: %s", r.Rect)
		}
	}

	again, _ := Generate(Uniform, rand.New(rand.NewSource(1)), cfg)
	if diff := pretty.Diff(recs, again); len(diff) > 0 {
		t.Errorf("same seed gave different records: %v", diff[:1])
	}
}

func TestGeo(t *testing.T) {
	recs, err := Generate(Geo, nil, Config{Count: 50, Size: 1})
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range recs {
		if err := r.Rect.Validate(); err != nil {
			t.Fatal(err)
		}
		if r.Rect.Top < -90 || r.Rect.Top > 90 || r.Rect.Left < -180 || r.Rect.Left > 180 {
			t.Errorf("not a lat/long origin: %s", r.Rect)
		}
	}
}

func TestParseSource(t *testing.T) {
	for _, s := range []string{"uniform", "geo"} {
		if _, err := ParseSource(s); err != nil {
			t.Errorf("%s: %v", s, err)
		}
	}
	if _, err := ParseSource("gaussian"); err == nil {
		t.Error("expected error for unknown source")
	}
	if _, err := Generate(Uniform, rand.New(rand.NewSource(1)), Config{Count: -1}); err == nil {
		t.Error("expected error for negative count")
	}
}

func TestGenerateRejectsHugeCount(t *testing.T) {
	_, err := Generate(Uniform, rand.New(rand.NewSource(1)), Config{Count: MaxCount + 1, Range: 100, Size: 10})
	if err == nil {
		t.Fatal("expected an error for a count above MaxCount")
	}
}
