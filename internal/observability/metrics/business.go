package metrics

import (
	"time"
)

// RecordHeadlinesFetch records one headline feed fetch.
// Mode is "upstream" when the provider answered, "fallback" when the
// built-in dataset was substituted.
func RecordHeadlinesFetch(mode, category string) {
	HeadlinesFetchesTotal.WithLabelValues(mode, category).Inc()
}

// RecordArticleIngested records a newly persisted article for a category.
func RecordArticleIngested(category string) {
	ArticlesIngestedTotal.WithLabelValues(category).Inc()
}

// RecordArticleDuplicated records an article skipped because its URL already exists.
func RecordArticleDuplicated(category string) {
	ArticlesDuplicatedTotal.WithLabelValues(category).Inc()
}

// RecordClassification records the label produced by a sentiment classification.
func RecordClassification(sentiment string) {
	ClassificationsTotal.WithLabelValues(sentiment).Inc()
}

// RecordClassificationFallback records a classification failure that was
// defaulted to the neutral label.
func RecordClassificationFallback() {
	ClassificationFallbacksTotal.Inc()
}

// RecordArticleSummarized records the result of an article summarization operation.
// Status is either "success" or "failure".
func RecordArticleSummarized(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	ArticlesSummarizedTotal.WithLabelValues(status).Inc()
}

// RecordSummarizationDuration records the time taken to summarize an article.
func RecordSummarizationDuration(duration time.Duration) {
	SummarizationDuration.Observe(duration.Seconds())
}

// RecordIngestBatch records the duration of one ingestion batch.
func RecordIngestBatch(category string, duration time.Duration) {
	IngestBatchDuration.WithLabelValues(category).Observe(duration.Seconds())
}

// SetIngestQueueDepth updates the dispatcher queue depth gauge.
func SetIngestQueueDepth(depth int) {
	IngestQueueDepth.Set(float64(depth))
}

// RecordIngestJobDropped records a job rejected because the queue was full.
func RecordIngestJobDropped() {
	IngestJobsDroppedTotal.Inc()
}

// RecordFeedCrawl records metrics for one RSS feed crawl.
func RecordFeedCrawl(feedURL string, duration time.Duration) {
	FeedCrawlDuration.WithLabelValues(feedURL).Observe(duration.Seconds())
}

// RecordFeedCrawlError records an error during RSS feed crawling.
func RecordFeedCrawlError(feedURL, errorType string) {
	FeedCrawlErrors.WithLabelValues(feedURL, errorType).Inc()
}

// UpdateArticlesTotal updates the total count of articles in the database.
// This gauge should be updated periodically to reflect the current state.
func UpdateArticlesTotal(count int) {
	ArticlesTotal.Set(float64(count))
}

// UpdateSourcesTotal updates the total count of sources in the database.
// This gauge should be updated periodically to reflect the current state.
func UpdateSourcesTotal(count int) {
	SourcesTotal.Set(float64(count))
}

// RecordContentFetchSuccess records a successful content fetch operation.
func RecordContentFetchSuccess(duration time.Duration, size int) {
	ContentFetchAttemptsTotal.WithLabelValues("success").Inc()
	ContentFetchDuration.Observe(duration.Seconds())
	ContentFetchSize.Observe(float64(size))
}

// RecordContentFetchFailed records a failed content fetch operation.
func RecordContentFetchFailed(duration time.Duration) {
	ContentFetchAttemptsTotal.WithLabelValues("failure").Inc()
	ContentFetchDuration.Observe(duration.Seconds())
}

// RecordContentFetchSkipped records a skipped content fetch operation.
// This occurs when the available text is already sufficient and fetching
// is unnecessary.
func RecordContentFetchSkipped() {
	ContentFetchAttemptsTotal.WithLabelValues("skipped").Inc()
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "select_articles", "insert_article").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
