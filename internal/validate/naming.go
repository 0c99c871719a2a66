package validate

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tsoniclang/tsonic/internal/diag"
	"github.com/tsoniclang/tsonic/internal/ir"
)

// NamingCollisionPass implements item 7: apply the
// configured case policy to every emitted identifier bucket, then check
// for collisions among originals that now share a spelling. The module
// container colliding with a same-named top-level type declaration is
// resolved by renaming the container with an idempotent `__Module`
// suffix, rather than reported as a collision.
type NamingCollisionPass struct{}

func (p *NamingCollisionPass) Name() string { return "naming-policy-collision-check" }
func (p *NamingCollisionPass) StopsPipelineOnError() bool { return false }

func (p *NamingCollisionPass) Run(mod *ir.Module, ctx *Context, diags *diag.Collector) (*ir.Module, error) {
	resolveContainerCollision(mod)

	buckets := map[string]map[string][]string{} // bucket -> policied name -> original names seen
	record := func(bucket, policy, original string) {
		applied := ApplyCase(CasePolicy(policy), original)
		if buckets[bucket] == nil {
			buckets[bucket] = map[string][]string{}
		}
		buckets[bucket][applied] = append(buckets[bucket][applied], original)
	}

	classBucket := string(ctx.Naming.Classes)
	methodBucket := string(ctx.Naming.Methods)
	propBucket := string(ctx.Naming.Properties)
	fieldBucket := string(ctx.Naming.Fields)
	enumBucket := string(ctx.Naming.EnumMembers)

	for _, s := range mod.Statements {
		switch st := s.(type) {
		case *ir.ClassDecl:
			record("classes", classBucket, st.Name)
			recordMembers(record, methodBucket, propBucket, fieldBucket, st.Members)
		case *ir.InterfaceDecl:
			record("classes", classBucket, st.Name)
			recordMembers(record, methodBucket, propBucket, fieldBucket, st.Members)
		case *ir.EnumDecl:
			record("classes", classBucket, st.Name)
			for _, m := range st.Members {
				record("enumMembers", enumBucket, m.Name)
			}
		}
	}

	for bucket, byPolicied := range buckets {
		names := make([]string, 0, len(byPolicied))
		for n := range byPolicied {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, policied := range names {
			originals := byPolicied[policied]
			if len(originals) < 2 {
				continue
			}
			unique := uniqueSorted(originals)
			if len(unique) < 2 {
				continue
			}
			diags.Error(diag.CodeNamingCollision, nil,
				"naming policy collapses %v to %q in the %s bucket", unique, policied, bucket)
		}
	}

	return mod, nil
}

func recordMembers(record func(bucket, policy, original string), methodBucket, propBucket, fieldBucket string, members []ir.ClassMember) {
	for _, m := range members {
		switch m.Kind {
		case ir.MemberMethod:
			record("methods", methodBucket, m.Name)
		case ir.MemberGetter, ir.MemberSetter:
			record("properties", propBucket, m.Name)
		case ir.MemberField:
			record("fields", fieldBucket, m.Name)
		}
	}
}

func uniqueSorted(names []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

// resolveContainerCollision renames the module container with an
// idempotent `__Module` suffix when a top-level declaration already
// uses the container's name.
func resolveContainerCollision(mod *ir.Module) {
	for {
		collides := false
		for _, s := range mod.Statements {
			if name, ok := declaredName(s); ok && name == mod.ContainerName {
				collides = true
				break
			}
		}
		if !collides {
			return
		}
		if strings.HasSuffix(mod.ContainerName, "__Module") {
			return // already suffixed; suffixing again would not be idempotent
		}
		mod.ContainerName += "__Module"
	}
}

var titleCaser = cases.Title(language.Und)

// splitWords breaks an identifier into its case/underscore-delimited
// words: camelCase and PascalCase boundaries, and `_`/`-` separators.
func splitWords(name string) []string {
	var words []string
	var cur strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if r == '_' || r == '-' {
			if cur.Len() > 0 {
				words = append(words, cur.String())
				cur.Reset()
			}
			continue
		}
		if i > 0 && cur.Len() > 0 {
			prev := runes[i-1]
			startsNewWord := false
			if isUpper(r) && !isUpper(prev) {
				startsNewWord = true
			}
			if isUpper(r) && isUpper(prev) && i+1 < len(runes) && !isUpper(runes[i+1]) {
				startsNewWord = true
			}
			if startsNewWord {
				words = append(words, cur.String())
				cur.Reset()
			}
		}
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		words = append(words, cur.String())
	}
	return words
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }

// ApplyCase transforms name per policy (per-bucket case
// policy). Pascal/camel both title-case each word via golang.org/x/text/
// cases so non-ASCII identifiers fold correctly; camel lower-cases the
// leading word afterward.
func ApplyCase(policy CasePolicy, name string) string {
	switch policy {
	case CasePascal:
		words := splitWords(name)
		var sb strings.Builder
		for _, w := range words {
			sb.WriteString(titleCaser.String(w))
		}
		return sb.String()
	case CaseCamel:
		words := splitWords(name)
		var sb strings.Builder
		for i, w := range words {
			if i == 0 {
				sb.WriteString(strings.ToLower(w))
				continue
			}
			sb.WriteString(titleCaser.String(w))
		}
		return sb.String()
	case CaseSnake:
		words := splitWords(name)
		for i, w := range words {
			words[i] = strings.ToLower(w)
		}
		return strings.Join(words, "_")
	default:
		return name
	}
}
