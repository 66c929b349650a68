package relay

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"github.com/rotisserie/eris"

	"floodaid/internal/api"
)

// Kind enumerates relay outcomes
type Kind string

const (
	KindOK            Kind = "ok"
	KindConfigMissing Kind = "config_missing"
	KindUpstreamError Kind = "upstream_error"
	KindTimeout       Kind = "timeout"
	KindNetworkError  Kind = "network_error"
	KindMalformed     Kind = "malformed"
	KindUnexpected    Kind = "unexpected"
)

const maxDetailLen = 100

// Result is the outcome of one relay call. Text is set for KindOK, Status
// and Detail for KindUpstreamError, ErrType and Detail for KindUnexpected.
type Result struct {
	Kind    Kind
	Text    string
	Status  int
	Detail  string
	ErrType string
}

// Classify maps a provider error onto a result kind
func Classify(err error) Result {
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		return Result{Kind: KindUpstreamError, Status: statusErr.StatusCode, Detail: statusErr.Detail}
	}

	var decodeErr *api.DecodeError
	if errors.As(err, &decodeErr) {
		return Result{Kind: KindMalformed}
	}

	var reqErr *api.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.Timeout {
			return Result{Kind: KindTimeout}
		}
		return Result{Kind: KindNetworkError}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return Result{Kind: KindTimeout}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return Result{Kind: KindTimeout}
	}
	var urlErr *url.Error
	var opErr *net.OpError
	if errors.As(err, &urlErr) || errors.As(err, &opErr) {
		return Result{Kind: KindNetworkError}
	}

	return Result{
		Kind:    KindUnexpected,
		ErrType: fmt.Sprintf("%T", eris.Cause(err)),
		Detail:  truncate(err.Error(), maxDetailLen),
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

const emergencyFooter = "🆘 Rescue 1122: **1122**\n🚑 Edhi Ambulance: **115**\n📞 PDMA: **1129**"

// Render produces the user-facing text for a result. Every failure text
// repeats the emergency numbers.
func Render(r Result) string {
	switch r.Kind {
	case KindOK:
		return r.Text

	case KindConfigMissing:
		return "❌ **API Configuration Error**\n" +
			"The Gemini API key is not configured. Please:\n" +
			"1. Set the `GOOGLE_API_KEY` environment variable\n" +
			"2. Get your API key from: https://makersuite.google.com/app/apikey\n" +
			"3. Restart the service\n" +
			"Meanwhile, I can still help you with:\n" +
			"🏠 Shelter information\n" +
			"📞 Emergency contacts\n" +
			"⚕️ Medical tips\n" +
			"📦 Relief camp locations\n" +
			"**For immediate emergency help:**\n" + emergencyFooter

	case KindUpstreamError:
		return renderUpstream(r)

	case KindTimeout:
		return "⏱️ **Request Timeout**\n" +
			"The request took too long. Please:\n" +
			"1. Check your internet connection\n" +
			"2. Try again in a moment\n" +
			"**Emergency contacts remain available:**\n" + emergencyFooter

	case KindNetworkError:
		return "🌐 **Network Connection Error**\n" +
			"Cannot reach the AI service. Please check your internet connection.\n" +
			"**Emergency contacts:**\n" + emergencyFooter

	case KindMalformed:
		return "I received an unexpected response format. Please try rephrasing your question.\n" +
			"**For immediate emergency help:**\n" + emergencyFooter

	default:
		return "⚠️ **Unexpected Error**\n" +
			fmt.Sprintf("Error type: %s\n", r.ErrType) +
			fmt.Sprintf("Details: %s\n", truncate(r.Detail, maxDetailLen)) +
			"**For immediate emergency assistance:**\n" + emergencyFooter + "\n" +
			"Please try again or contact support."
	}
}

func renderUpstream(r Result) string {
	switch r.Status {
	case http.StatusBadRequest:
		detail := r.Detail
		if detail == "" {
			detail = "Unknown error"
		}
		return "❌ **API Request Error**\n" +
			"There was an issue with the request. This might be due to:\n" +
			"- Invalid API key format\n" +
			"- API key restrictions\n" +
			"- Request format issue\n" +
			fmt.Sprintf("Error details: %s\n", detail) +
			"Please check your API key at: https://makersuite.google.com/app/apikey\n" +
			"**For immediate emergency help:**\n" + emergencyFooter

	case http.StatusForbidden:
		return "❌ **API Permission Error**\n" +
			"Your API key doesn't have permission to access this model. Please:\n" +
			"1. Go to https://makersuite.google.com/app/apikey\n" +
			"2. Create a new API key or check your current key's permissions\n" +
			"3. Ensure the Gemini API is enabled for your project\n" +
			"**For immediate emergency help:**\n" + emergencyFooter

	default:
		return fmt.Sprintf("⚠️ **API Connection Issue** (Status: %d)\n", r.Status) +
			"I'm having trouble connecting right now.\n" +
			"**For immediate emergency help:**\n" + emergencyFooter + "\n" +
			"Please try again in a moment."
	}
}
