package match

import (
	"errors"
	"reflect"
	"testing"

	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/engine"
)

func sampleCatalog() []engine.LearningResource {
	return []engine.LearningResource{
		{ID: "r1", Title: "Docker Deep Dive", Provider: "Udemy", Cost: engine.CostPaid, Skills: []string{"Docker"}},
		{ID: "r2", Title: "Cloud Native Bootcamp", Provider: "freeCodeCamp", Cost: engine.CostFree, Skills: []string{"Docker", "Kubernetes", "Terraform"}},
		{ID: "r3", Title: "Kubernetes Basics", Provider: "YouTube", Cost: engine.CostFree, Skills: []string{"Kubernetes"}},
		{ID: "r4", Title: "Modern React", Provider: "Frontend Masters", Cost: engine.CostPaid, Skills: []string{"React", "TypeScript"}},
	}
}

func TestRecommend_RanksByOverlap(t *testing.T) {
	missing := []string{"Docker", "Kubernetes"}

	got, err := Recommend(missing, sampleCatalog(), 10)
	if err != nil {
		t.Fatalf("Recommend error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d resources, want 3 (React course excluded)", len(got))
	}
	if got[0].ResourceID != "r2" || got[0].OverlapCount != 2 {
		t.Errorf("top = %+v, want r2 covering both gaps", got[0])
	}
	// r1 and r3 both cover one skill; catalog order breaks the tie.
	if got[1].ResourceID != "r1" || got[2].ResourceID != "r3" {
		t.Errorf("tie order = [%s %s], want [r1 r3]", got[1].ResourceID, got[2].ResourceID)
	}
}

func TestRecommend_Deterministic(t *testing.T) {
	missing := []string{"Docker", "Kubernetes", "Terraform"}

	first, err := Recommend(missing, sampleCatalog(), 10)
	if err != nil {
		t.Fatalf("Recommend error: %v", err)
	}
	second, err := Recommend(missing, sampleCatalog(), 10)
	if err != nil {
		t.Fatalf("Recommend error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated call returned different ranking:\n%v\n%v", first, second)
	}
}

func TestRecommend_InvalidLimit(t *testing.T) {
	for _, limit := range []int{0, -1} {
		_, err := Recommend([]string{"Docker"}, sampleCatalog(), limit)
		if !errors.Is(err, engine.ErrInvalidInput) {
			t.Errorf("limit %d: err = %v, want ErrInvalidInput", limit, err)
		}
	}
}

func TestRecommend_Truncates(t *testing.T) {
	got, err := Recommend([]string{"Docker", "Kubernetes"}, sampleCatalog(), 1)
	if err != nil {
		t.Fatalf("Recommend error: %v", err)
	}
	if len(got) != 1 || got[0].ResourceID != "r2" {
		t.Errorf("got %v, want only the top resource", got)
	}
}

func TestRecommend_DedupesCatalogEntries(t *testing.T) {
	catalog := append(sampleCatalog(), sampleCatalog()...)
	got, err := Recommend([]string{"Docker"}, catalog, 10)
	if err != nil {
		t.Fatalf("Recommend error: %v", err)
	}
	seen := map[string]bool{}
	for _, r := range got {
		if seen[r.ResourceID] {
			t.Errorf("resource %s appears twice", r.ResourceID)
		}
		seen[r.ResourceID] = true
	}
}

func TestRecommend_CoversCountedPerMissingSkill(t *testing.T) {
	catalog := []engine.LearningResource{
		{ID: "r1", Title: "JS from Zero", Skills: []string{"js", "javascript"}},
	}
	got, err := Recommend([]string{"JavaScript"}, catalog, 5)
	if err != nil {
		t.Fatalf("Recommend error: %v", err)
	}
	if len(got) != 1 || got[0].OverlapCount != 1 {
		t.Errorf("got %+v, want one resource with overlap 1", got)
	}
	if len(got[0].Covers) != 1 || got[0].Covers[0] != "javascript" {
		t.Errorf("Covers = %v, want [javascript]", got[0].Covers)
	}
}

func TestRecommend_EmptyInputs(t *testing.T) {
	got, err := Recommend(nil, sampleCatalog(), 5)
	if err != nil {
		t.Fatalf("Recommend error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("no missing skills should recommend nothing, got %v", got)
	}

	got, err = Recommend([]string{"Docker"}, nil, 5)
	if err != nil {
		t.Fatalf("Recommend error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("empty catalog should recommend nothing, got %v", got)
	}
}
