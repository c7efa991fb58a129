package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/claude/trainup/internal/client"
)

func TestReadTrainingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "training.json")
	payload := `{
		"name": "Upper body A",
		"week_day": 1,
		"trainingItems": [
			{"series": 3, "times": 12}
		]
	}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := readTrainingFile(path)
	if err != nil {
		t.Fatalf("readTrainingFile: %v", err)
	}
	if data.Name != "Upper body A" {
		t.Errorf("Name = %q, want %q", data.Name, "Upper body A")
	}
	if data.WeekDay == nil || *data.WeekDay != 1 {
		t.Errorf("WeekDay = %v, want 1", data.WeekDay)
	}
	if len(data.Items) != 1 || data.Items[0].Series != 3 {
		t.Errorf("Items = %+v, want one item with series 3", data.Items)
	}
}

func TestReadTrainingFileErrors(t *testing.T) {
	if _, err := readTrainingFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := readTrainingFile(path); err == nil || !strings.Contains(err.Error(), "parsing") {
		t.Errorf("error = %v, want parse failure", err)
	}
}

func TestWrapCatalogErr(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&client.APIError{StatusCode: 403, Message: "trainer access required"}, "only trainers can manage the category catalog"},
		{&client.APIError{StatusCode: 409, Message: "name taken"}, "a category with that name already exists"},
		{&client.APIError{StatusCode: 404, Message: "no such row"}, "category not found"},
	}
	for _, tt := range tests {
		if got := wrapCatalogErr(tt.err, "category"); got.Error() != tt.want {
			t.Errorf("wrapCatalogErr(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}

	plain := errors.New("connection refused")
	if got := wrapCatalogErr(plain, "category"); got != plain {
		t.Errorf("wrapCatalogErr(%v) = %v, want it unchanged", plain, got)
	}
}
