package module

import (
	"time"

	"shopguide/internal/core/specificity"
	"shopguide/internal/platform/config"
	"shopguide/internal/services/interview/service"
)

// Options holds configuration settings for the interview module
type Options struct {
	Engine     service.Config
	Policy     specificity.Policy
	SessionTTL time.Duration
	SchemaPath string
}

// FromConfig reads INTERVIEW_* settings
func FromConfig(cfg config.Conf) Options {
	ic := cfg.Prefix("INTERVIEW_")
	def := service.DefaultConfig()

	return Options{
		Engine: service.Config{
			MaxQuestions:      ic.MayInt("MAX_QUESTIONS", def.MaxQuestions),
			CapabilityTimeout: ic.MayDuration("CAPABILITY_TIMEOUT", def.CapabilityTimeout),
			MinConfidence:     ic.MayRatio("MIN_CONFIDENCE", def.MinConfidence),
			FastPath:          ic.MayBool("FAST_PATH", def.FastPath),
		},
		Policy:     PolicyFromConfig(cfg),
		SessionTTL: ic.MayDuration("SESSION_TTL", 30*time.Minute),
		SchemaPath: ic.MayString("SCHEMA_PATH", ""),
	}
}

// PolicyFromConfig reads SPECIFICITY_* overrides onto the default weights
func PolicyFromConfig(cfg config.Conf) specificity.Policy {
	sc := cfg.Prefix("SPECIFICITY_")
	p := specificity.DefaultPolicy()

	p.Threshold = sc.MayFloat64("THRESHOLD", p.Threshold)
	p.DesktopFloor = sc.MayFloat64("DESKTOP_FLOOR", p.DesktopFloor)
	p.MinQueryLen = sc.MayInt("MIN_QUERY_LEN", p.MinQueryLen)
	p.CategoryBonus = sc.MayFloat64("CATEGORY_BONUS", p.CategoryBonus)
	p.MultiAttribute = sc.MayFloat64("MULTI_ATTRIBUTE", p.MultiAttribute)
	return p
}
