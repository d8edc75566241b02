package feed

import (
	"strings"
	"testing"
)

func TestContentExtractorValidHTML(t *testing.T) {
	extractor := NewContentExtractor()

	htmlContent := `
	<!DOCTYPE html>
	<html>
	<head>
		<title>Trial Results</title>
	</head>
	<body>
		<header>
			<h1>Site Header</h1>
			<nav>Navigation</nav>
		</header>
		<main>
			<article>
				<h1>Phase 3 Trial Results Published</h1>
				<p>The randomized trial enrolled over two thousand patients across forty sites. Researchers reported a significant improvement in progression-free survival for the treatment arm compared to standard of care.</p>
				<p>Adverse events were consistent with the known safety profile of the drug. The most common side effects were fatigue and nausea, both manageable with supportive care.</p>
				<p>Regulators are expected to review the submission later this year. Investigators emphasized that longer follow-up is needed to confirm the overall survival benefit observed in the interim analysis.</p>
			</article>
		</main>
		<aside>
			<div>Advertisement</div>
		</aside>
		<footer>
			<p>Copyright 2024</p>
		</footer>
	</body>
	</html>
	`

	result, err := extractor.Run([]byte(htmlContent))

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !strings.Contains(result, "progression-free survival") {
		t.Errorf("Expected extracted content to contain main article text")
	}

	if strings.Contains(result, "Advertisement") {
		t.Errorf("Expected extracted content to exclude advertisement")
	}

	if strings.Contains(result, "Copyright 2024") {
		t.Errorf("Expected extracted content to exclude footer")
	}

	// TextContent is plain text, markup must be gone
	if strings.Contains(result, "<p>") {
		t.Errorf("Expected plain text output, got markup: %s", result)
	}
}

func TestContentExtractorEmptyData(t *testing.T) {
	extractor := NewContentExtractor()

	result, err := extractor.Run([]byte{})

	if err == nil {
		t.Errorf("Expected error for empty data")
	}

	if result != "" {
		t.Errorf("Expected empty result for empty data")
	}
}

func TestContentExtractorNilData(t *testing.T) {
	extractor := NewContentExtractor()

	result, err := extractor.Run(nil)

	if err == nil {
		t.Errorf("Expected error for nil data")
	}

	if result != "" {
		t.Errorf("Expected empty result for nil data")
	}
}

func TestContentExtractorScriptRemoval(t *testing.T) {
	extractor := NewContentExtractor()

	htmlContent := `
	<!DOCTYPE html>
	<html>
	<head><title>Article with Scripts</title></head>
	<body>
		<script>
			console.log("This script should be removed");
		</script>
		<article>
			<h1>Immunotherapy Advances</h1>
			<p>This is the main content that should be extracted without any scripts interfering. The article contains substantial text content about recent advances in cancer immunotherapy research.</p>
			<p>The content extraction should focus on the meaningful text and ignore technical elements. Checkpoint inhibitors have transformed the treatment landscape for several tumor types.</p>
			<p>Here is more substantial content about combination regimens and biomarker-driven patient selection to ensure the article body is long enough for extraction.</p>
		</article>
	</body>
	</html>
	`

	result, err := extractor.Run([]byte(htmlContent))

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !strings.Contains(result, "main content that should be extracted") {
		t.Errorf("Expected extracted content to contain main article text")
	}

	if strings.Contains(result, "console.log") {
		t.Errorf("Expected extracted content to exclude script content")
	}
}
