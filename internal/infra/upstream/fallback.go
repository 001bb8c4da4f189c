package upstream

import (
	"time"

	"newspulse/internal/usecase/feed"
	"newspulse/internal/usecase/ingest"
)

// FallbackSourceName identifies articles served from the built-in dataset.
const FallbackSourceName = "NewsPulse Samples"

// fallbackArticles is the fixed dataset served whenever the upstream
// credential is absent or the upstream call fails. URLs are synthetic so
// the rest of the pipeline (dedup, enrichment, persistence) runs in any
// environment, and the bodies carry enough sentences for the summarizer to
// have something to select from.
var fallbackArticles = []ingest.RawArticle{
	{
		SourceName:  FallbackSourceName,
		Author:      "Sample Desk",
		Title:       "Tech stocks rally as chipmakers report strong growth",
		Description: "Semiconductor earnings beat expectations across the board.",
		Content: "Technology shares posted broad gains on Tuesday. Chipmakers led the advance after quarterly reports showed strong demand. " +
			"Analysts said the results point to sustained growth through the rest of the year. Several firms raised their full-year guidance. " +
			"Investors rotated back into the sector following weeks of caution. Trading volume was well above the recent average.",
		URL:         "https://samples.newspulse.dev/articles/tech-stocks-rally",
		ImageURL:    "https://samples.newspulse.dev/images/tech-stocks-rally.jpg",
		PublishedAt: time.Date(2024, time.March, 4, 9, 15, 0, 0, time.UTC),
	},
	{
		SourceName:  FallbackSourceName,
		Author:      "Sample Desk",
		Title:       "Energy crisis deepens as supply fears grow",
		Description: "Wholesale prices climbed again amid mounting supply concerns.",
		Content: "Wholesale energy prices climbed for a third straight week. Supply fears intensified after maintenance shut two major pipelines. " +
			"Utilities warned that the crisis could persist into the heating season. Industrial users reported heavy losses from unplanned stoppages. " +
			"Regulators are weighing emergency measures to stabilize the market. Households face another round of tariff increases.",
		URL:         "https://samples.newspulse.dev/articles/energy-crisis-deepens",
		ImageURL:    "https://samples.newspulse.dev/images/energy-crisis-deepens.jpg",
		PublishedAt: time.Date(2024, time.March, 4, 8, 40, 0, 0, time.UTC),
	},
	{
		SourceName:  FallbackSourceName,
		Author:      "Sample Desk",
		Title:       "City council reviews transit expansion proposal",
		Description: "A new light-rail corridor is under public consultation.",
		Content: "The city council opened hearings on the proposed transit expansion. The plan adds a light-rail corridor linking the northern suburbs to downtown. " +
			"Officials presented ridership projections for the first decade of operation. Residents raised questions about construction noise and rerouted bus lines. " +
			"A final vote is expected before the summer recess.",
		URL:         "https://samples.newspulse.dev/articles/transit-expansion-review",
		ImageURL:    "https://samples.newspulse.dev/images/transit-expansion-review.jpg",
		PublishedAt: time.Date(2024, time.March, 3, 17, 5, 0, 0, time.UTC),
	},
	{
		SourceName:  FallbackSourceName,
		Author:      "Sample Desk",
		Title:       "Retailer posts good quarter, raises outlook on strong sales",
		Description: "A boost in online orders carried the holiday period.",
		Content: "The retailer reported a good quarter driven by strong online sales. Management credited the boost to a revamped loyalty program. " +
			"Same-store revenue grew for the sixth consecutive period. The company raised its outlook for the coming fiscal year. " +
			"Shares gained in early trading on the news. Rivals are expected to report next week.",
		URL:         "https://samples.newspulse.dev/articles/retailer-good-quarter",
		ImageURL:    "https://samples.newspulse.dev/images/retailer-good-quarter.jpg",
		PublishedAt: time.Date(2024, time.March, 3, 12, 30, 0, 0, time.UTC),
	},
	{
		SourceName:  FallbackSourceName,
		Author:      "Sample Desk",
		Title:       "Storm damage leaves coastal towns counting losses",
		Description: "Cleanup continues after the weekend's bad weather.",
		Content: "Coastal towns began cleanup after the weekend storm. Early estimates put the losses in the tens of millions. " +
			"Emergency crews restored power to most affected areas by Monday. The bad weather also disrupted ferry services along the coast. " +
			"Officials warned that some roads remain closed. A relief fund opened for affected households.",
		URL:         "https://samples.newspulse.dev/articles/storm-damage-losses",
		ImageURL:    "https://samples.newspulse.dev/images/storm-damage-losses.jpg",
		PublishedAt: time.Date(2024, time.March, 2, 19, 50, 0, 0, time.UTC),
	},
}

// FallbackResult returns the fixed fallback dataset as a well-formed feed
// page. The result is a fresh copy on every call so callers can mutate it
// freely, and identical calls always produce identical data.
func FallbackResult() *feed.Result {
	articles := make([]ingest.RawArticle, len(fallbackArticles))
	copy(articles, fallbackArticles)

	return &feed.Result{
		Status:       "ok",
		TotalResults: len(articles),
		Articles:     articles,
	}
}
