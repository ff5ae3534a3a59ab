package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func newTestOpenAlexService(t *testing.T, handler http.Handler) *OpenAlexService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	t.Setenv("OPENALEX_BASE_URL", server.URL)
	return NewOpenAlexService(server.Client())
}

func TestWorkTypesStripsURLsAndSorts(t *testing.T) {
	svc := newTestOpenAlexService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("group_by"); got != "type" {
			t.Errorf("unexpected group_by: %s", got)
		}
		fmt.Fprint(w, `{"group_by":[
			{"key":"https://openalex.org/types/book","count":10},
			{"key":"https://openalex.org/types/article","count":90},
			{"key":"https://openalex.org/types/article/","count":1},
			{"key":"dataset","count":5}
		]}`)
	}))

	types := svc.WorkTypes(context.Background())
	if !reflect.DeepEqual(types, []string{"article", "book", "dataset"}) {
		t.Errorf("unexpected types: %v", types)
	}
}

func TestWorkTypesFallsBackOnUpstreamFailure(t *testing.T) {
	svc := newTestOpenAlexService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	types := svc.WorkTypes(context.Background())
	if !reflect.DeepEqual(types, []string{"article", "book", "other"}) {
		t.Errorf("unexpected fallback types: %v", types)
	}
}

func TestWorksCountByYearDropsUnknownYears(t *testing.T) {
	svc := newTestOpenAlexService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("filter"); got != "author.id:https://openalex.org/A123" {
			t.Errorf("unexpected filter: %s", got)
		}
		fmt.Fprint(w, `{"group_by":[
			{"key":"2020","count":3},
			{"key":"Unknown","count":9},
			{"key":"2021","count":1}
		]}`)
	}))

	counts := svc.WorksCountByYear(context.Background(), "A123")
	if len(counts) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(counts))
	}
	if counts[0].Year != "2020" || counts[0].Count != 3 {
		t.Errorf("unexpected first row: %+v", counts[0])
	}
	if counts[1].Year != "2021" || counts[1].Count != 1 {
		t.Errorf("unexpected second row: %+v", counts[1])
	}
}

func TestWorksCountByYearReturnsEmptyOnFailure(t *testing.T) {
	svc := newTestOpenAlexService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))

	counts := svc.WorksCountByYear(context.Background(), "A123")
	if len(counts) != 0 {
		t.Errorf("expected empty series, got %v", counts)
	}
}
