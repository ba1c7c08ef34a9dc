package docs

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type annotatedOp struct {
	file        string
	summary     string
	description string
	tags        []string
	params      []string
	codes       []string
}

type docOp struct {
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Parameters  []struct {
		Name string `json:"name"`
	} `json:"parameters"`
	Responses map[string]json.RawMessage `json:"responses"`
}

var (
	routeLine    = regexp.MustCompile(`^// @Router\s+(\S+)\s+\[(\w+)\]`)
	responseLine = regexp.MustCompile(`^// @(?:Success|Failure)\s+(\d{3})\s`)
)

// handlerAnnotations collects the swag comment blocks of the HTTP handlers
// keyed by "METHOD path".
func handlerAnnotations(t *testing.T) map[string]annotatedOp {
	t.Helper()

	files, err := filepath.Glob(filepath.Join("..", "internal", "server", "*.go"))
	require.NoError(t, err)

	ops := map[string]annotatedOp{}
	for _, file := range files {
		if strings.HasSuffix(file, "_test.go") {
			continue
		}
		f, err := os.Open(file)
		require.NoError(t, err)

		var cur annotatedOp
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if !strings.HasPrefix(line, "//") {
				cur = annotatedOp{}
				continue
			}
			fields := strings.Fields(strings.TrimPrefix(line, "//"))
			if len(fields) == 0 {
				continue
			}
			rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(line, "//"), " "+fields[0]))
			switch fields[0] {
			case "@Summary":
				cur.summary = rest
			case "@Description":
				cur.description = rest
			case "@Tags":
				cur.tags = strings.Split(rest, ",")
			case "@Param":
				cur.params = append(cur.params, fields[1])
			}
			if m := responseLine.FindStringSubmatch(line); m != nil {
				cur.codes = append(cur.codes, m[1])
			}
			if m := routeLine.FindStringSubmatch(line); m != nil {
				cur.file = filepath.Base(file)
				ops[strings.ToUpper(m[2])+" "+m[1]] = cur
				cur = annotatedOp{}
			}
		}
		require.NoError(t, scanner.Err())
		require.NoError(t, f.Close())
	}
	return ops
}

func servedOperations(t *testing.T) map[string]docOp {
	t.Helper()

	var doc struct {
		Paths map[string]map[string]docOp `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc))

	ops := map[string]docOp{}
	for path, item := range doc.Paths {
		for method, op := range item {
			ops[strings.ToUpper(method)+" "+path] = op
		}
	}
	return ops
}

func TestDocsMatchHandlerAnnotations(t *testing.T) {
	annotated := handlerAnnotations(t)
	served := servedOperations(t)
	require.NotEmpty(t, annotated)

	annotatedKeys := make([]string, 0, len(annotated))
	for key := range annotated {
		annotatedKeys = append(annotatedKeys, key)
	}
	servedKeys := make([]string, 0, len(served))
	for key := range served {
		servedKeys = append(servedKeys, key)
	}
	sort.Strings(annotatedKeys)
	sort.Strings(servedKeys)
	require.Equal(t, annotatedKeys, servedKeys, "documented operations")

	for key, want := range annotated {
		t.Run(key, func(t *testing.T) {
			got := served[key]
			assert.Equal(t, want.summary, got.Summary, want.file)
			assert.Equal(t, want.description, got.Description, want.file)
			assert.Equal(t, want.tags, got.Tags, want.file)

			params := make([]string, 0, len(got.Parameters))
			for _, p := range got.Parameters {
				params = append(params, p.Name)
			}
			assert.ElementsMatch(t, want.params, params, want.file)

			codes := make([]string, 0, len(got.Responses))
			for code := range got.Responses {
				codes = append(codes, code)
			}
			assert.ElementsMatch(t, want.codes, codes, want.file)
		})
	}
}

func TestDocsInfo(t *testing.T) {
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc))

	info := doc["info"].(map[string]any)
	assert.Equal(t, "AI Model Hub API", info["title"])
	assert.Equal(t, "1.0.0", info["version"])
	assert.Equal(t, []any{"http", "https"}, doc["schemes"])
	assert.Contains(t, doc["securityDefinitions"], "BearerAuth")
}
