package util

import (
	"reflect"
	"testing"
)

func TestParseSearchQuery(t *testing.T) {
	query := "tag:Fitness status:completed priority:high Morning run"
	got := ParseSearchQuery(query)

	if !reflect.DeepEqual(got.Tags, []string{"fitness"}) {
		t.Fatalf("Tags = %v, want %v", got.Tags, []string{"fitness"})
	}
	if !reflect.DeepEqual(got.Status, []string{"completed"}) {
		t.Fatalf("Status = %v, want %v", got.Status, []string{"completed"})
	}
	if !reflect.DeepEqual(got.Priority, []string{"high"}) {
		t.Fatalf("Priority = %v, want %v", got.Priority, []string{"high"})
	}
	if !reflect.DeepEqual(got.Text, []string{"morning", "run"}) {
		t.Fatalf("Text = %v, want %v", got.Text, []string{"morning", "run"})
	}
	if got.Empty() {
		t.Fatalf("query should not be empty")
	}
	if !ParseSearchQuery("   ").Empty() {
		t.Fatalf("blank query should be empty")
	}
}
