package common

const (
	JobTypePreview    = "preview"
	JobTypeRefine     = "refine"
	JobTypeImageTo3D  = "image-to-3d"
	JobTypeRetexture  = "retexture"
	JobTypeRegenerate = "regenerate"

	JobStateInitialized = "initialized"
	JobStatePending     = "pending"
	JobStateInProgress  = "in_progress"
	JobStateSucceeded   = "succeeded"
	JobStateFailed      = "failed"

	AssetStateDraft      = "draft"
	AssetStateGenerating = "generating"
	AssetStatePreview    = "preview"
	AssetStateRefining   = "refining"
	AssetStateCompleted  = "completed"
	AssetStateFailed     = "failed"

	AssetSourceForge = "forge"
	AssetSourceCDN   = "cdn"

	CategoryNPC      = "npc"
	CategoryWeapon   = "weapon"
	CategoryTool     = "tool"
	CategoryResource = "resource"
	CategoryProp     = "prop"
	CategoryBuilding = "building"
	CategoryArmor    = "armor"

	ManifestItems     = "items"
	ManifestNPCs      = "npcs"
	ManifestResources = "resources"
	ManifestBuildings = "buildings"

	RelationDrops      = "drops"
	RelationSells      = "sells"
	RelationYields     = "yields"
	RelationCraftsFrom = "crafts_from"

	ExportStateCompleted = "completed"
	ExportStateFailed    = "failed"

	// Routing key prefix for asset events published to RabbitMQ.
	// Final form: asset.{category}.{asset state}
	AssetEventRoutingPrefix = "asset"
)

// Categories lists every asset category the forge accepts.
var Categories = []string{
	CategoryNPC,
	CategoryWeapon,
	CategoryTool,
	CategoryResource,
	CategoryProp,
	CategoryBuilding,
	CategoryArmor,
}

// Manifests lists the manifest files served by the companion game server.
var Manifests = []string{
	ManifestItems,
	ManifestNPCs,
	ManifestResources,
	ManifestBuildings,
}

// ManifestForCategory maps an asset category to the manifest it is exported to.
func ManifestForCategory(category string) string {
	switch category {
	case CategoryNPC:
		return ManifestNPCs
	case CategoryResource:
		return ManifestResources
	case CategoryBuilding:
		return ManifestBuildings
	default:
		// weapons, tools, props and armor all live in the items manifest
		return ManifestItems
	}
}

// CategoryForManifest is the fallback category for entries imported
// from a manifest that do not declare one themselves.
func CategoryForManifest(manifest string) string {
	switch manifest {
	case ManifestNPCs:
		return CategoryNPC
	case ManifestResources:
		return CategoryResource
	case ManifestBuildings:
		return CategoryBuilding
	default:
		return CategoryProp
	}
}

// ValidCategory reports whether category is one of the forge's asset categories.
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// TerminalJobState reports whether a generation job state is final.
func TerminalJobState(state string) bool {
	return state == JobStateSucceeded || state == JobStateFailed
}
