package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dawsonl1/halda-serper/internal/core/domain"
	"github.com/dawsonl1/halda-serper/internal/core/ports/driven"
	"github.com/dawsonl1/halda-serper/internal/core/ports/driving"
)

func TestOrchestrator_Search_ComposedQueryAndDomainFilter(t *testing.T) {
	provider := newMockProvider()
	provider.hits["Acme U tuition"] = []driven.OrganicResult{
		hit("https://news.example.com/acme"),
		hit("https://www.acme.edu/tuition"),
		hit("https://bursar.acme.edu/costs"),
	}
	o := NewOrchestrator(provider, 2)

	results, err := o.Search(context.Background(), driving.SearchRequest{
		SchoolName:        "Acme U",
		UniversityWebsite: "https://www.acme.edu",
		Selections:        []domain.Selection{{QuestionCode: "Q5", OptionCode: "Q5A", Label: "tuition"}},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Acme U tuition"}, provider.Queries())
	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, "Q5", r.QuestionCode)
	assert.Equal(t, "Q5A", r.OptionCode)
	assert.Nil(t, r.Audience)
	require.NotNil(t, r.URL)
	assert.Equal(t, "https://www.acme.edu/tuition", *r.URL)
	require.Len(t, r.Options, 2)
	assert.Equal(t, "https://bursar.acme.edu/costs", r.Options[1].URL)
}

func TestOrchestrator_Search_OverrideSkipsFilter(t *testing.T) {
	provider := newMockProvider()
	provider.hits["acme tuition cost"] = []driven.OrganicResult{hit("https://news.example.com/acme")}
	o := NewOrchestrator(provider, 1)

	results, err := o.Search(context.Background(), driving.SearchRequest{
		SchoolName:        "Acme U",
		UniversityWebsite: "https://www.acme.edu",
		Selections: []domain.Selection{{
			QuestionCode: "Q5", OptionCode: "Q5A", Label: "tuition",
			Audience: "graduate", QueryOverride: "  acme tuition cost ",
		}},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"acme tuition cost"}, provider.Queries())
	require.Len(t, results, 1)
	assert.Equal(t, "https://news.example.com/acme", results[0].URLValue())
	assert.Equal(t, "graduate", results[0].AudienceValue())
}

func TestOrchestrator_Search_AudienceInQuery(t *testing.T) {
	provider := newMockProvider()
	o := NewOrchestrator(provider, 1)

	results, err := o.Search(context.Background(), driving.SearchRequest{
		SchoolName: "Acme U",
		Selections: []domain.Selection{{QuestionCode: "Q5", OptionCode: "Q5A", Label: "tuition", Audience: " graduate "}},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Acme U graduate tuition"}, provider.Queries())
	assert.Nil(t, results[0].URL)
	assert.Empty(t, results[0].Options)
	assert.Equal(t, "graduate", results[0].AudienceValue())
}

func TestOrchestrator_Search_NoWebsiteNoFilter(t *testing.T) {
	provider := newMockProvider()
	provider.hits["Acme U tuition"] = []driven.OrganicResult{hit("https://elsewhere.org/a")}
	o := NewOrchestrator(provider, 1)

	results, err := o.Search(context.Background(), driving.SearchRequest{
		SchoolName: "Acme U",
		Selections: []domain.Selection{{QuestionCode: "Q5", OptionCode: "Q5A", Label: "tuition"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "https://elsewhere.org/a", results[0].URLValue())
}

func TestOrchestrator_Search_KeepsTopFive(t *testing.T) {
	provider := newMockProvider()
	for i := range 8 {
		provider.hits["Acme U tuition"] = append(provider.hits["Acme U tuition"],
			hit(fmt.Sprintf("https://acme.edu/%d", i)))
	}
	o := NewOrchestrator(provider, 1)

	results, err := o.Search(context.Background(), driving.SearchRequest{
		SchoolName:        "Acme U",
		UniversityWebsite: "https://acme.edu",
		Selections:        []domain.Selection{{QuestionCode: "Q5", OptionCode: "Q5A", Label: "tuition"}},
	})

	require.NoError(t, err)
	require.Len(t, results[0].Options, domain.MaxCandidates)
	assert.Equal(t, "https://acme.edu/0", results[0].URLValue())
	assert.Equal(t, "https://acme.edu/4", results[0].Options[4].URL)
}

func TestOrchestrator_Search_FailureIsolatedPerSelection(t *testing.T) {
	provider := newMockProvider()
	provider.hits["Acme U housing"] = []driven.OrganicResult{hit("https://acme.edu/housing")}
	provider.fail["Acme U graduate tuition"] = true
	o := NewOrchestrator(provider, 2)

	results, err := o.Search(context.Background(), driving.SearchRequest{
		SchoolName: "Acme U",
		Selections: []domain.Selection{
			{QuestionCode: "Q5", OptionCode: "Q5A", Label: "tuition", Audience: "graduate"},
			{QuestionCode: "Q6", OptionCode: "Q6A", Label: "housing"},
		},
	})

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Nil(t, results[0].URL)
	assert.Nil(t, results[0].Audience)
	assert.Empty(t, results[0].Options)
	assert.Equal(t, "https://acme.edu/housing", results[1].URLValue())
}

func TestOrchestrator_Search_PreservesOrderAndSkipsEmptyLabels(t *testing.T) {
	provider := newMockProvider()
	selections := make([]domain.Selection, 0, 12)
	for i := range 12 {
		label := fmt.Sprintf("item%d", i)
		if i == 3 {
			label = ""
		}
		selections = append(selections, domain.Selection{
			QuestionCode: "Q5", OptionCode: fmt.Sprintf("Q5%c", 'A'+i), Label: label,
		})
	}
	o := NewOrchestrator(provider, 4)

	results, err := o.Search(context.Background(), driving.SearchRequest{SchoolName: "Acme U", Selections: selections})

	require.NoError(t, err)
	require.Len(t, results, 11)
	want := make([]string, 0, 11)
	for _, s := range selections {
		if s.Label != "" {
			want = append(want, s.OptionCode)
		}
	}
	got := make([]string, len(results))
	for i, r := range results {
		got[i] = r.OptionCode
	}
	assert.Equal(t, want, got)
	assert.LessOrEqual(t, provider.maxInFlight.Load(), int32(4))
}

func TestOrchestrator_Search_Validation(t *testing.T) {
	o := NewOrchestrator(newMockProvider(), 1)
	sel := []domain.Selection{{QuestionCode: "Q5", OptionCode: "Q5A", Label: "tuition"}}

	_, err := o.Search(context.Background(), driving.SearchRequest{SchoolName: "  ", Selections: sel})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "schoolName", vErr.Field)

	_, err = o.Search(context.Background(), driving.SearchRequest{SchoolName: "Acme U"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "selections", vErr.Field)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrchestrator_Search_NoProviderCheckedFirst(t *testing.T) {
	o := NewOrchestrator(nil, 1)

	_, err := o.Search(context.Background(), driving.SearchRequest{})

	assert.ErrorIs(t, err, domain.ErrProviderNotConfigured)
}

func TestOrchestrator_Search_NoLeakedGoroutines(t *testing.T) {
	defer goleak.VerifyNone(t)

	provider := newMockProvider()
	provider.block = make(chan struct{})
	o := NewOrchestrator(provider, 3)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan []domain.SearchResult)
	go func() {
		results, _ := o.Search(ctx, driving.SearchRequest{
			SchoolName: "Acme U",
			Selections: []domain.Selection{
				{QuestionCode: "Q5", OptionCode: "Q5A", Label: "a"},
				{QuestionCode: "Q5", OptionCode: "Q5B", Label: "b"},
				{QuestionCode: "Q5", OptionCode: "Q5C", Label: "c"},
				{QuestionCode: "Q5", OptionCode: "Q5D", Label: "d"},
			},
		})
		done <- results
	}()
	cancel()

	results := <-done
	require.Len(t, results, 4)
	for _, r := range results {
		assert.Nil(t, r.URL)
	}
}

func TestNewOrchestrator_DefaultConcurrency(t *testing.T) {
	o := NewOrchestrator(newMockProvider(), 0)
	assert.Equal(t, domain.DefaultConcurrency, o.concurrency)
}
