package fetch

import (
	"net/url"
	"strings"
)

// Platform is a job board whose pages get dedicated selectors
type Platform string

// Known platforms
const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformAshby      Platform = "ashby"
	PlatformUnknown    Platform = "unknown"
)

type platformRules struct {
	platform Platform
	hosts    []string
	content  []string
	noise    []string
}

var platformTable = []platformRules{
	{
		platform: PlatformGreenhouse,
		hosts:    []string{"greenhouse.io"},
		content:  []string{".job__description.body", ".job__description", ".job-description__content", "#content", ".job-post-container"},
		noise:    []string{".application--wrapper", ".voluntary-self-id", "#usa_self_id_section", ".post-apply"},
	},
	{
		platform: PlatformLever,
		hosts:    []string{"lever.co"},
		content:  []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
		noise:    []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	{
		platform: PlatformWorkday,
		hosts:    []string{"workday.com", "myworkdayjobs.com"},
		content:  []string{"[data-automation-id='jobDescription']", ".gwt-HTML", ".job-description"},
		noise:    []string{"[data-automation-id='applyButton']", ".application-section"},
	},
	{
		platform: PlatformAshby,
		hosts:    []string{"ashbyhq.com"},
		content:  []string{"[class*='_descriptionText']", "[class*='_description']", "main"},
		noise:    []string{"[class*='_applicationForm']"},
	},
}

// commonNoise is removed from every job posting: application forms, EEO text, share widgets and consent banners
var commonNoise = []string{
	"form", "#application-form", ".application-form", ".apply-button-container",
	".voluntary-disclosure", ".eeo-statement", ".eeo-section", ".legal-disclosure", ".self-identification",
	".social-share", ".share-buttons", ".social-links",
	".cookie-consent", ".gdpr-notice",
}

// jobPostingSelectors are tried on pages from unknown hosts
var jobPostingSelectors = []string{
	".job-description", ".job-content", "#job-description", "#job-content",
	".posting-content", ".job-details", "[data-testid='job-description']",
	"main", "article", ".content", "#content",
}

// DetectPlatform identifies the job board from a URL's host
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	for _, rules := range platformTable {
		for _, h := range rules.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return rules.platform
			}
		}
	}
	return PlatformUnknown
}

// PlatformContentSelectors returns the content selectors for a platform, most specific first
func PlatformContentSelectors(platform Platform) []string {
	if rules, ok := lookup(platform); ok {
		return append([]string(nil), rules.content...)
	}
	return append([]string(nil), jobPostingSelectors...)
}

// PlatformNoiseSelectors returns the shared noise selectors plus the platform's own
func PlatformNoiseSelectors(platform Platform) []string {
	out := append([]string(nil), commonNoise...)
	if rules, ok := lookup(platform); ok {
		out = append(out, rules.noise...)
	}
	return out
}

func lookup(platform Platform) (platformRules, bool) {
	for _, rules := range platformTable {
		if rules.platform == platform {
			return rules, true
		}
	}
	return platformRules{}, false
}
