package env

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Load reads dotenv files in order. Variables already present in the process
// environment are never overridden; later files override earlier ones.
// Missing or unreadable files are skipped.
func Load(paths ...string) {
	pre := map[string]struct{}{}
	for _, k := range keys(os.Environ()) {
		pre[k] = struct{}{}
	}
	for _, p := range paths {
		if p == "" {
			continue
		}
		vals, err := godotenv.Read(p)
		if err != nil {
			continue
		}
		for k, v := range vals {
			if _, ok := pre[k]; ok {
				continue
			}
			_ = os.Setenv(k, v)
		}
	}
}

func keys(environ []string) []string {
	out := make([]string, 0, len(environ))
	for _, e := range environ {
		if i := strings.IndexByte(e, '='); i > 0 {
			out = append(out, e[:i])
		}
	}
	return out
}
