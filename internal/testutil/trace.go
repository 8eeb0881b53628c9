package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

var tracer = otel.Tracer("testutil")

// SetupMockTraceProvider installs a provider that records spans in memory
func SetupMockTraceProvider() *tracetest.InMemoryExporter {
	exporter := tracetest.NewInMemoryExporter()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter)))
	return exporter
}

// CreateHttpRequest builds an echo context whose request carries a fresh root span
func CreateHttpRequest() (echo.Context, *http.Request, *httptest.ResponseRecorder, string) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	ctx, root := tracer.Start(req.Context(), "testRoot")
	root.End()

	c := echo.New().NewContext(req.WithContext(ctx), rec)
	return c, req, rec, root.SpanContext().TraceID().String()
}

// HasSpan reports whether a span with the given name belongs to the trace
func HasSpan(spans tracetest.SpanStubs, traceID, name string) bool {
	for _, span := range spans {
		if span.Name == name && span.SpanContext.TraceID().String() == traceID {
			return true
		}
	}
	return false
}

// PrintSpans dumps the spans of one trace, or every span name when the trace is missing
func PrintSpans(spans tracetest.SpanStubs, traceID string) {
	var b strings.Builder
	matched := 0
	for _, span := range spans {
		if span.SpanContext.TraceID().String() != traceID {
			continue
		}
		matched++
		fmt.Fprintf(&b, "span %s [%s]\n", span.Name, span.SpanContext.SpanID())
		for _, attr := range span.Attributes {
			fmt.Fprintf(&b, "  %s=%s\n", attr.Key, attr.Value.Emit())
		}
		for _, event := range span.Events {
			fmt.Fprintf(&b, "  event %s\n", event.Name)
			for _, attr := range event.Attributes {
				fmt.Fprintf(&b, "    %s=%s\n", attr.Key, attr.Value.Emit())
			}
		}
	}

	if matched == 0 {
		fmt.Fprintf(&b, "no spans in trace %s; recorded:\n", traceID)
		for _, span := range spans {
			fmt.Fprintf(&b, "  %s (%s)\n", span.Name, span.SpanContext.TraceID())
		}
	}
	fmt.Fprint(os.Stderr, b.String())
}
