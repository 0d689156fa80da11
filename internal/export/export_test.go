package export

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nibzard/tasklist-go/internal/todo"
)

var sample = []todo.Task{
	{
		ID:          "1",
		Title:       "Buy milk",
		Description: "2 liters",
		CreatedAt:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Status:      todo.StatusPending,
	},
	{
		ID:          "2",
		Title:       "Walk: the dog",
		Description: "30 min",
		CreatedAt:   time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
		Status:      todo.StatusCompleted,
	},
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"YAML", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"csv", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("ParseFormat(%q): got %v, want ErrUnknownFormat", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestWriteJSONDecodesAsTasks(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sample, FormatJSON); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	tasks, err := todo.DecodeTasks(buf.Bytes(), todo.ValidationOptions{Schema: true})
	if err != nil {
		t.Fatalf("JSON export is not a valid task list: %v", err)
	}
	if len(tasks) != 2 || tasks[1].Title != "Walk: the dog" {
		t.Errorf("decoded: %+v", tasks)
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sample, FormatYAML); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var decoded []map[string]string
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("YAML export does not parse: %v\n%s", err, buf.String())
	}
	if len(decoded) != 2 {
		t.Fatalf("got %d entries, want 2", len(decoded))
	}
	if decoded[0]["createdAt"] != "2024-01-02T03:04:05Z" {
		t.Errorf("createdAt: got %q", decoded[0]["createdAt"])
	}
	if decoded[1]["status"] != "completed" || decoded[1]["title"] != "Walk: the dog" {
		t.Errorf("second entry: %v", decoded[1])
	}
}

func TestWriteEmptyYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil, FormatYAML); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if buf.String() != "[]\n" {
		t.Errorf("empty YAML export: got %q, want %q", buf.String(), "[]\n")
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, sample, Format("xml")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Write(xml): got %v, want ErrUnknownFormat", err)
	}
}
