// Package providers registers every provider client with the core
// factory. Import for side effects wherever clients are constructed.
package providers

import (
	_ "github.com/stake-plus/claimcheck/src/ai/gemini"
	_ "github.com/stake-plus/claimcheck/src/ai/openai"
)
