package wasm

import "strings"

// ProposalTag identifies which Wasm proposal introduced an instruction or
// catalog entry. Order here is declaration order, not release order —
// release order is carried separately in proposalOrdinal so catalog rows
// can be sorted without reshuffling this enum.
type ProposalTag uint32

const (
	ProposalMvp ProposalTag = iota
	ProposalSignExtension
	ProposalNonTrappingFloatToIntConversion
	ProposalMultiValue
	ProposalReferenceTypes
	ProposalBulkMemoryOperations
	ProposalSimd
	ProposalThreads
)

var proposalOrdinal = map[ProposalTag]int{
	ProposalMvp:                              0,
	ProposalSignExtension:                    1,
	ProposalNonTrappingFloatToIntConversion:  1,
	ProposalMultiValue:                       1,
	ProposalReferenceTypes:                   2,
	ProposalBulkMemoryOperations:             2,
	ProposalThreads:                          3,
	ProposalSimd:                             4,
}

var proposalName = map[ProposalTag]string{
	ProposalMvp:                             "mvp",
	ProposalSignExtension:                   "sign-extension-ops",
	ProposalNonTrappingFloatToIntConversion: "nontrapping-float-to-int-conversion",
	ProposalMultiValue:                      "multi-value",
	ProposalReferenceTypes:                  "reference-types",
	ProposalBulkMemoryOperations:            "bulk-memory",
	ProposalThreads:                         "threads",
	ProposalSimd:                            "simd",
}

// Ordinal returns the proposal's release ordinal, used to sort proposals
// stably: by ordinal first, then by tag name.
func (p ProposalTag) Ordinal() int { return proposalOrdinal[p] }

func (p ProposalTag) String() string {
	if n, ok := proposalName[p]; ok {
		return n
	}
	return "unknown"
}

// SortedProposals returns every known proposal tag ordered by release
// ordinal, then by tag name, giving the catalog a stable, deterministic order.
func SortedProposals() []ProposalTag {
	tags := make([]ProposalTag, 0, len(proposalName))
	for t := range proposalName {
		tags = append(tags, t)
	}
	for i := 1; i < len(tags); i++ {
		for j := i; j > 0; j-- {
			a, b := tags[j-1], tags[j]
			if a.Ordinal() > b.Ordinal() || (a.Ordinal() == b.Ordinal() && a.String() > b.String()) {
				tags[j-1], tags[j] = tags[j], tags[j-1]
			} else {
				break
			}
		}
	}
	return tags
}

// Features is a bitset of enabled proposals, gating which catalog entries
// CompileModule accepts. The zero value is invalid: construct one from
// Features20191205 (the Wasm 1.0 MVP baseline) and layer additions with Set.
type Features uint64

const (
	featureBitMvp Features = 1 << iota
	featureBitSignExtension
	featureBitNonTrappingFloatToInt
	featureBitMultiValue
	featureBitReferenceTypes
	featureBitBulkMemory
	featureBitSimd
	featureBitThreads
)

var featureBitByProposal = map[ProposalTag]Features{
	ProposalMvp:                              featureBitMvp,
	ProposalSignExtension:                    featureBitSignExtension,
	ProposalNonTrappingFloatToIntConversion:  featureBitNonTrappingFloatToInt,
	ProposalMultiValue:                       featureBitMultiValue,
	ProposalReferenceTypes:                   featureBitReferenceTypes,
	ProposalBulkMemoryOperations:             featureBitBulkMemory,
	ProposalSimd:                             featureBitSimd,
	ProposalThreads:                          featureBitThreads,
}

// Features20191205 is the Wasm 1.0 / "MVP" feature set, named for the date
// the spec's first release was finalized.
const Features20191205 Features = featureBitMvp

// Features20220419 additionally enables the proposals that had reached
// the "phase 4" (standardized) stage by that date.
const Features20220419 Features = Features20191205 |
	featureBitSignExtension | featureBitNonTrappingFloatToInt |
	featureBitMultiValue | featureBitReferenceTypes | featureBitBulkMemory

// Get reports whether every proposal in other is enabled in f.
func (f Features) Get(other Features) bool { return f&other == other }

// Set returns f with the given proposal's bit set to enabled.
func (f Features) Set(p ProposalTag, enabled bool) Features {
	bit := featureBitByProposal[p]
	if enabled {
		return f | bit
	}
	return f &^ bit
}

// HasProposal reports whether p is enabled in f.
func (f Features) HasProposal(p ProposalTag) bool {
	bit, ok := featureBitByProposal[p]
	return ok && f&bit != 0
}

// RequireEnabled returns an error naming p if it is not enabled in f.
func (f Features) RequireEnabled(p ProposalTag) error {
	if f.HasProposal(p) || p == ProposalMvp {
		return nil
	}
	return &FeatureDisabledError{Proposal: p}
}

// String lists enabled proposal names, comma separated.
func (f Features) String() string {
	var names []string
	for _, p := range SortedProposals() {
		if f.HasProposal(p) {
			names = append(names, p.String())
		}
	}
	return strings.Join(names, ",")
}
