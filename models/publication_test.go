package models

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestPublicationTagsMarshalAsStrings(t *testing.T) {
	pub := Publication{
		ID:      3,
		Title:   "A Paper",
		Authors: "Jane Doe",
		Tags: []PublicationTag{
			{PublicationID: 3, Tag: "machine learning"},
			{PublicationID: 3, Tag: "robotics"},
		},
	}

	data, err := json.Marshal(pub)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"tags":["machine learning","robotics"]`) {
		t.Errorf("unexpected tags encoding: %s", data)
	}

	var decoded Publication
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(decoded.TagList(), []string{"machine learning", "robotics"}) {
		t.Errorf("unexpected round-tripped tags: %v", decoded.TagList())
	}
}

func TestPublicationBeforeSaveDefaults(t *testing.T) {
	blank := ""
	zero := 0
	pub := Publication{
		Title:           "  ",
		Authors:         "",
		IdentifierURL:   &blank,
		PublicationYear: &zero,
	}

	if err := pub.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave returned error: %v", err)
	}
	if pub.Title != "Untitled" {
		t.Errorf("unexpected title: %q", pub.Title)
	}
	if pub.Authors != "Unknown Author" {
		t.Errorf("unexpected authors: %q", pub.Authors)
	}
	if pub.IdentifierURL != nil {
		t.Errorf("expected blank identifier url cleared, got %v", pub.IdentifierURL)
	}
	if pub.PublicationYear != nil {
		t.Errorf("expected non-positive year cleared, got %v", pub.PublicationYear)
	}
}

func TestPublicationSetTagsDedupesAndTrims(t *testing.T) {
	pub := Publication{ID: 7}
	pub.SetTags([]string{" AI ", "robotics", "AI", "", "robotics"})

	if !reflect.DeepEqual(pub.TagList(), []string{"AI", "robotics"}) {
		t.Errorf("unexpected tags: %v", pub.TagList())
	}
	for _, tag := range pub.Tags {
		if tag.PublicationID != 7 {
			t.Errorf("tag not bound to publication: %+v", tag)
		}
	}
}

func TestMemberBeforeSaveDefaults(t *testing.T) {
	blank := " "
	member := Member{Name: "", SourceID: &blank}

	if err := member.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave returned error: %v", err)
	}
	if member.Name != "Unknown" {
		t.Errorf("unexpected name: %q", member.Name)
	}
	if member.SourceID != nil {
		t.Errorf("expected blank source id cleared, got %v", member.SourceID)
	}
}
