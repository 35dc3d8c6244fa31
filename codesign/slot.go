package codesign

import (
	"fmt"

	"github.com/appsworld/macho-codesign/types"
)

// slotNames is the rendering table behind Slot.String(), following the
// teacher's IntName-table Stringer convention: every fixed-ID slot gets a
// named entry, and values with no match (including unrecognised ones, and
// the non-fixed AlternateCodeDirectory IDs handled separately below) fall
// back to hex.
var slotNames = []types.IntName{
	{slotWireCodeDirectory, "CodeDirectory"},
	{slotWireInfo, "Info"},
	{slotWireRequirements, "Requirements"},
	{slotWireResourceDir, "ResourceDir"},
	{slotWireApplication, "Application"},
	{slotWireEntitlements, "Entitlements"},
	{slotWireRepSpecific, "RepSpecific"},
	{slotWireEntitlementsDER, "EntitlementsDER"},
	{slotWireSignature, "Signature"},
	{slotWireIdentification, "Identification"},
	{slotWireTicket, "Ticket"},
}

// Slot is the typed role of a blob within a super-blob's index table. It is
// a closed enum over the known wire IDs plus an Unknown catch-all, so that
// from/to round-trips for every possible u32 without a failure mode.
type Slot struct {
	known   slotKind
	unknown uint32
}

type slotKind int

const (
	slotUnknown slotKind = iota
	SlotCodeDirectory
	SlotInfo
	SlotRequirements
	SlotResourceDir
	SlotApplication
	SlotEntitlements
	SlotRepSpecific
	SlotEntitlementsDER
	SlotAlternateCodeDirectory
	SlotSignature
	SlotIdentification
	SlotTicket
)

const (
	slotWireCodeDirectory    uint32 = 0
	slotWireInfo             uint32 = 1
	slotWireRequirements     uint32 = 2
	slotWireResourceDir      uint32 = 3
	slotWireApplication      uint32 = 4
	slotWireEntitlements     uint32 = 5
	slotWireRepSpecific      uint32 = 6
	slotWireEntitlementsDER  uint32 = 7
	slotWireAltCDBase        uint32 = 0x1000
	slotWireAltCDCount       uint32 = 5
	slotWireSignature        uint32 = 0x10000
	slotWireIdentification   uint32 = 0x10001
	slotWireTicket           uint32 = 0x10002
)

// altIndex holds the alternate code directory index k (0..4) when the
// variant is SlotAlternateCodeDirectory.
func (s Slot) altIndex() uint32 {
	return s.unknown - slotWireAltCDBase
}

// SlotFromU32 decodes a wire slot type into a Slot, preserving unrecognised
// values in the Unknown variant rather than failing.
func SlotFromU32(v uint32) Slot {
	switch {
	case v == slotWireCodeDirectory:
		return Slot{known: SlotCodeDirectory}
	case v == slotWireInfo:
		return Slot{known: SlotInfo}
	case v == slotWireRequirements:
		return Slot{known: SlotRequirements}
	case v == slotWireResourceDir:
		return Slot{known: SlotResourceDir}
	case v == slotWireApplication:
		return Slot{known: SlotApplication}
	case v == slotWireEntitlements:
		return Slot{known: SlotEntitlements}
	case v == slotWireRepSpecific:
		return Slot{known: SlotRepSpecific}
	case v == slotWireEntitlementsDER:
		return Slot{known: SlotEntitlementsDER}
	case v >= slotWireAltCDBase && v < slotWireAltCDBase+slotWireAltCDCount:
		return Slot{known: SlotAlternateCodeDirectory, unknown: v}
	case v == slotWireSignature:
		return Slot{known: SlotSignature}
	case v == slotWireIdentification:
		return Slot{known: SlotIdentification}
	case v == slotWireTicket:
		return Slot{known: SlotTicket}
	default:
		return Slot{known: slotUnknown, unknown: v}
	}
}

// ToU32 is the inverse of SlotFromU32: SlotFromU32(s.ToU32()) == s and
// SlotFromU32(v).ToU32() == v for every u32 v.
func (s Slot) ToU32() uint32 {
	switch s.known {
	case SlotCodeDirectory:
		return slotWireCodeDirectory
	case SlotInfo:
		return slotWireInfo
	case SlotRequirements:
		return slotWireRequirements
	case SlotResourceDir:
		return slotWireResourceDir
	case SlotApplication:
		return slotWireApplication
	case SlotEntitlements:
		return slotWireEntitlements
	case SlotRepSpecific:
		return slotWireRepSpecific
	case SlotEntitlementsDER:
		return slotWireEntitlementsDER
	case SlotAlternateCodeDirectory:
		return s.unknown
	case SlotSignature:
		return slotWireSignature
	case SlotIdentification:
		return slotWireIdentification
	case SlotTicket:
		return slotWireTicket
	default: // slotUnknown
		return s.unknown
	}
}

// IsUnknown reports whether v had no named variant.
func (s Slot) IsUnknown() bool {
	return s.known == slotUnknown
}

// UnknownValue returns the raw wire value for an Unknown slot; zero otherwise.
func (s Slot) UnknownValue() uint32 {
	if s.known == slotUnknown {
		return s.unknown
	}
	return 0
}

func (s Slot) String() string {
	if s.known == SlotAlternateCodeDirectory {
		return fmt.Sprintf("AlternateCodeDirectory(%d)", s.altIndex())
	}
	return types.StringName(s.ToU32(), slotNames, false)
}

// AlternateCodeDirectorySlot builds the Slot for alternate code directory k (0..4).
func AlternateCodeDirectorySlot(k uint32) Slot {
	return Slot{known: SlotAlternateCodeDirectory, unknown: slotWireAltCDBase + k}
}
