package types

import "sort"

// NominalEnv answers deterministic inheritance and substitution queries
// over a UnifiedTypeCatalog. It holds no mutable state of
// its own beyond the catalogue reference — queries are pure functions of
// the catalogue's current contents.
type NominalEnv struct {
	catalog *UnifiedTypeCatalog
}

// NewNominalEnv builds a NominalEnv over catalog.
func NewNominalEnv(catalog *UnifiedTypeCatalog) *NominalEnv {
	return &NominalEnv{catalog: catalog}
}

// GetInheritanceChain returns a stable, de-duplicated BFS traversal of
// typeId's heritage graph: the type itself first, then its heritage
// edges ordered extends-before-implements and, within each kind, by
// target stableId, then each of those types' own edges, and so on.
func (e *NominalEnv) GetInheritanceChain(typeId string) []string {
	visited := map[string]bool{typeId: true}
	chain := []string{typeId}
	queue := []string{typeId}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		nt := e.catalog.Lookup(cur)
		if nt == nil {
			continue
		}
		for _, target := range orderedHeritageTargets(nt.Heritage) {
			if visited[target] {
				continue
			}
			visited[target] = true
			chain = append(chain, target)
			queue = append(queue, target)
		}
	}
	return chain
}

func orderedHeritageTargets(edges []HeritageEdge) []string {
	sorted := make([]HeritageEdge, len(edges))
	copy(sorted, edges)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Kind != sorted[j].Kind {
			return sorted[i].Kind == HeritageExtends
		}
		return sorted[i].TargetStableId < sorted[j].TargetStableId
	})
	out := make([]string, len(sorted))
	for i, e := range sorted {
		out[i] = e.TargetStableId
	}
	return out
}

// GetInstantiation walks the heritage graph from receiverId (bound to
// receiverArgs) to targetId, composing the type-parameter substitution
// maps along the way. It returns nil if targetId is not reachable from
// receiverId.
func (e *NominalEnv) GetInstantiation(receiverId string, receiverArgs []IrType, targetId string) map[string]IrType {
	receiver := e.catalog.Lookup(receiverId)
	if receiver == nil {
		return nil
	}
	base := bindParams(receiver.TypeParams, receiverArgs)
	if receiverId == targetId {
		return base
	}
	return e.walkToTarget(receiverId, base, targetId, map[string]bool{receiverId: true})
}

func (e *NominalEnv) walkToTarget(curId string, curSubst map[string]IrType, targetId string, visited map[string]bool) map[string]IrType {
	nt := e.catalog.Lookup(curId)
	if nt == nil {
		return nil
	}
	for _, target := range orderedHeritageTargets(nt.Heritage) {
		if visited[target] {
			continue
		}
		visited[target] = true
		edgeArgs := heritageArgsFor(nt.Heritage, target)
		substituted := make([]IrType, len(edgeArgs))
		for i, a := range edgeArgs {
			substituted[i] = Substitute(a, curSubst)
		}
		targetType := e.catalog.Lookup(target)
		var nextSubst map[string]IrType
		if targetType != nil {
			nextSubst = bindParams(targetType.TypeParams, substituted)
		}
		if target == targetId {
			return nextSubst
		}
		if result := e.walkToTarget(target, nextSubst, targetId, visited); result != nil {
			return result
		}
	}
	return nil
}

func heritageArgsFor(edges []HeritageEdge, target string) []IrType {
	for _, e := range edges {
		if e.TargetStableId == target {
			return e.TypeArguments
		}
	}
	return nil
}

func bindParams(params []string, args []IrType) map[string]IrType {
	m := make(map[string]IrType, len(params))
	for i, p := range params {
		if i < len(args) {
			m[p] = args[i]
		}
	}
	return m
}

// FindMemberDeclaringType walks receiverId's inheritance chain (bound to
// receiverArgs) looking for the first type that declares memberName,
// returning its stableId and the composed substitution needed to view
// that member through the receiver, or ("", nil, false) if no type in
// the chain declares it.
func (e *NominalEnv) FindMemberDeclaringType(receiverId string, receiverArgs []IrType, memberName string) (string, map[string]IrType, bool) {
	for _, stableId := range e.GetInheritanceChain(receiverId) {
		nt := e.catalog.Lookup(stableId)
		if nt == nil {
			continue
		}
		if _, ok := nt.Members[memberName]; ok {
			subst := e.GetInstantiation(receiverId, receiverArgs, stableId)
			return stableId, subst, true
		}
	}
	return "", nil, false
}
