package docs

import (
	"bufio"
	"encoding/json"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	summaryRe     = regexp.MustCompile(`^// @Summary (.+)$`)
	descriptionRe = regexp.MustCompile(`^// @Description (.+)$`)
	routerRe      = regexp.MustCompile(`^// @Router (\S+) \[(\w+)\]$`)
)

type operationDoc struct {
	Summary     string `json:"summary"`
	Description string `json:"description"`
}

// Los textos de docs.go tienen que seguir a las anotaciones de los handlers.
func TestDocTemplate_MatchesHandlerAnnotations(t *testing.T) {
	var doc struct {
		Paths map[string]map[string]operationDoc `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc))

	routes := 0
	for _, file := range []string{
		"../internal/domain/animals/handler.go",
		"../internal/domain/dashboard/handler.go",
	} {
		f, err := os.Open(file)
		require.NoError(t, err)

		var want operationDoc
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if m := summaryRe.FindStringSubmatch(line); m != nil {
				want.Summary = strings.TrimSpace(m[1])
			}
			if m := descriptionRe.FindStringSubmatch(line); m != nil {
				want.Description = strings.TrimSpace(m[1])
			}
			if m := routerRe.FindStringSubmatch(line); m != nil {
				got, ok := doc.Paths[m[1]][m[2]]
				require.True(t, ok, "missing %s %s in docs", m[2], m[1])
				assert.Equal(t, want, got, "%s %s", m[2], m[1])
				want = operationDoc{}
				routes++
			}
		}
		require.NoError(t, sc.Err())
		_ = f.Close()
	}
	assert.Equal(t, 7, routes)
}
