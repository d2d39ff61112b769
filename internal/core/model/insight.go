package model

import "fmt"

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

func ParseSentiment(s string) (Sentiment, error) {
	switch Sentiment(s) {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return Sentiment(s), nil
	}
	return "", fmt.Errorf("unknown sentiment: %q", s)
}

// Provenance marks where insight data came from.
type Provenance string

const (
	ProvenanceLive        Provenance = "live"
	ProvenanceTimeout     Provenance = "timeout"
	ProvenanceUnavailable Provenance = "unavailable"
)

// CompanyInsight is built once per distinct company in a run. When the
// sentiment source fails or times out a placeholder is substituted; the
// pipeline never blocks on a missing insight.
type CompanyInsight struct {
	CompanyName  string     `json:"company_name"`
	Sentiment    Sentiment  `json:"sentiment"`
	Highlights   []string   `json:"highlights"`
	RecentNews   []string   `json:"recent_news"`
	CultureNotes []string   `json:"culture_notes"`
	AISummary    string     `json:"ai_summary,omitempty"`
	Provenance   Provenance `json:"provenance"`
}

// PlaceholderInsight is the neutral substitute used when insight
// retrieval cannot complete.
func PlaceholderInsight(company string, provenance Provenance) CompanyInsight {
	return CompanyInsight{
		CompanyName: company,
		Sentiment:   SentimentNeutral,
		Provenance:  provenance,
	}
}
