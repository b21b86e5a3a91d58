// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package cluster

import (
	"reflect"
	"testing"
	"time"

	"github.com/punieth/sos-pm-chanakya/internal/model"
)

func classified(title, url, provider string) model.ClassifiedItem {
	return model.ClassifiedItem{
		NormalizedItem: model.NormalizedItem{
			Title:        title,
			CanonicalURL: url,
			URL:          url,
			Provider:     provider,
			Domain:       "example.com",
			PublishedAt:  time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
		},
		Archetype: model.ArchetypeTrend,
	}
}

func TestNearIdenticalTitlesShareACluster(t *testing.T) {
	items := []model.ClassifiedItem{
		classified("RBI tightens UPI payment rules for merchants", "https://a.example/1", "rss"),
		classified("RBI tightens UPI payment rules for small merchants", "https://b.example/2", "rss"),
		classified("Cricket final draws record crowd in Mumbai", "https://c.example/3", "rss"),
	}

	out, clusters := Assign(items, nil)
	if out[0].ClusterID != out[1].ClusterID {
		t.Errorf("near-identical titles split: %q vs %q", out[0].ClusterID, out[1].ClusterID)
	}
	if out[2].ClusterID == out[0].ClusterID {
		t.Error("unrelated story joined the cluster")
	}
	if len(clusters) != 2 {
		t.Errorf("cluster count = %d, want 2", len(clusters))
	}
}

func TestIdenticalCanonicalURLsCollapse(t *testing.T) {
	items := []model.ClassifiedItem{
		classified("RBI tightens payment rules", "https://news.example/story", "rss"),
		classified("Completely different wording of it", "https://news.example/story", "api"),
	}

	out, clusters := Assign(items, nil)
	if out[0].ClusterID != out[1].ClusterID {
		t.Error("identical canonical URLs did not collapse into one cluster")
	}
	if len(clusters) != 1 {
		t.Errorf("cluster count = %d, want 1", len(clusters))
	}
	if clusters[0].Size() != 2 {
		t.Errorf("cluster size = %d, want 2", clusters[0].Size())
	}
}

func TestAssignIsIdempotent(t *testing.T) {
	items := []model.ClassifiedItem{
		classified("RBI tightens UPI rules", "https://a.example/1", "rss"),
		classified("RBI tightens UPI rules for banks", "https://b.example/2", "rss"),
		classified("Flipkart launches quick delivery", "https://c.example/3", "rss"),
		classified("Paytm partners with Axis Bank", "https://d.example/4", "rss"),
	}

	first, _ := Assign(items, nil)
	second, _ := Assign(items, nil)

	a := make([]string, len(first))
	b := make([]string, len(second))
	for i := range first {
		a[i] = first[i].ClusterID
		b[i] = second[i].ClusterID
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("assignments differ across identical runs: %v vs %v", a, b)
	}
}

func TestEmptyItemsAreExcludedFromClustering(t *testing.T) {
	items := []model.ClassifiedItem{
		classified("", "", "rss"),
		classified("RBI tightens UPI rules", "https://a.example/1", "rss"),
	}
	out, clusters := Assign(items, nil)
	if out[0].ClusterID != "" {
		t.Error("empty item received a cluster id")
	}
	if len(clusters) != 1 {
		t.Errorf("cluster count = %d, want 1", len(clusters))
	}
}

func scored(title string) model.ScoredItem {
	return model.ScoredItem{
		ClassifiedItem: classified(title, "https://x.example/"+title, "rss"),
	}
}

func TestSameTopicIsSymmetric(t *testing.T) {
	items := []model.ScoredItem{
		scored("RBI caps UPI transaction fees at 2000 rupees"),
		scored("UPI fees capped by RBI at 2000 rupees for merchants"),
		scored("Cricket final draws record crowd"),
		scored("Quantum computing startup raises funding"),
	}
	docs := BuildTopicDocs(items)
	for i := range docs {
		for j := range docs {
			if SameTopic(docs[i], docs[j]) != SameTopic(docs[j], docs[i]) {
				t.Errorf("SameTopic not symmetric for (%d,%d)", i, j)
			}
		}
	}
}

func TestParaphrasedHeadlinesCollapseToOne(t *testing.T) {
	titles := []string{
		"RBI caps UPI fees at 2000 rupees",
		"UPI fees capped at 2000 rupees by RBI",
		"Central bank RBI limits UPI charges to 2000 rupees",
		"RBI sets 2000 rupee ceiling on UPI fees",
		"New RBI ceiling puts UPI fees at 2000 rupees",
		"UPI charge limit of 2000 rupees announced by RBI",
		"RBI announces 2000 rupee cap on UPI fees",
		"UPI fee ceiling fixed at 2000 rupees says RBI",
		"RBI fixes UPI fee cap at 2000 rupees",
		"2000 rupee UPI fee cap confirmed by RBI",
		"RBI confirms UPI fees capped at 2000 rupees",
		"UPI fee limit now 2000 rupees per RBI order",
	}
	items := make([]model.ScoredItem, len(titles))
	for i, title := range titles {
		items[i] = scored(title)
	}

	docs := BuildTopicDocs(items)
	keep, absorbed := Dedup(docs)
	if len(keep) != 1 {
		t.Fatalf("survivors = %d, want exactly 1", len(keep))
	}
	if len(absorbed[keep[0]]) != len(titles)-1 {
		t.Errorf("absorbed = %d, want %d", len(absorbed[keep[0]]), len(titles)-1)
	}
}

func TestDistinctStoriesSurviveDedup(t *testing.T) {
	items := []model.ScoredItem{
		scored("RBI caps UPI fees at 2000 rupees"),
		scored("Flipkart launches drone delivery pilot in Bangalore"),
		scored("OpenAI announces new enterprise model pricing"),
	}
	docs := BuildTopicDocs(items)
	keep, _ := Dedup(docs)
	if len(keep) != 3 {
		t.Errorf("survivors = %d, want 3", len(keep))
	}
}

func TestDedupKeepsFirstSeen(t *testing.T) {
	items := []model.ScoredItem{
		scored("RBI caps UPI fees at 2000 rupees"),
		scored("UPI fees capped at 2000 rupees by RBI"),
	}
	docs := BuildTopicDocs(items)
	keep, absorbed := Dedup(docs)
	if len(keep) != 1 || keep[0] != 0 {
		t.Fatalf("keep = %v, want [0]", keep)
	}
	if !reflect.DeepEqual(absorbed[0], []int{1}) {
		t.Errorf("absorbed = %v, want [1]", absorbed[0])
	}
}
