package shared

const (
	ProjectID = "fitglue-project" // Overridden by GOOGLE_CLOUD_PROJECT

	ServiceName = "body-highlighter"

	TopicMuscleClicked = "topic-muscle-clicked"

	// CloudEvent metadata for click notifications
	EventSourceHighlighter = "/fitglue/body-highlighter"
	EventTypeMuscleClicked = "com.fitglue.bodyhighlighter.muscle.clicked"

	// DefaultAssetsBucket is used when SHOWCASE_ASSETS_BUCKET is unset (local development)
	DefaultAssetsBucket = "fitglue-server-dev-showcase-assets"
)
