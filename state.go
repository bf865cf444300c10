package dungeongraph

// State is the phase a Generator is in. States only ever advance.
type State int

const (
	Inactive           State = iota // created, no steps taken yet
	GeneratingMain                  // building the main path towards the exit
	GeneratingBranches              // spending left over connectors on branches
	Cleanup                         // finalization pass is running
	Completed                       // layout is finished & safe to decorate
)

var stateNames = map[State]string{
	Inactive:           "inactive",
	GeneratingMain:     "generating-main",
	GeneratingBranches: "generating-branches",
	Cleanup:            "cleanup",
	Completed:          "completed",
}

// String returns a human readable name for the state
func (s State) String() string {
	n, ok := stateNames[s]
	if !ok {
		return "unknown"
	}
	return n
}

// Role indicates which part of the catalog a tile was drawn from.
type Role string

const (
	RoleStart  = "start"  // the single root of the main path
	RoleNormal = "normal" // rooms & corridors making up paths
	RoleExit   = "exit"   // final tile of the main path
)

var (
	allRoles = []Role{RoleStart, RoleNormal, RoleExit}

	roleindex = map[Role]int{
		RoleStart:  1,
		RoleNormal: 2,
		RoleExit:   3,
	}

	invRoleIndex = map[int]Role{}
)

func init() {
	for k, v := range roleindex {
		invRoleIndex[v] = k
	}
}

// ID returns the index of a role, 0 if unknown
func (r Role) ID() int {
	v, ok := roleindex[r]
	if !ok {
		return 0
	}
	return v
}

// roleForID is the inversion of Role.ID()
func roleForID(i int) (Role, bool) {
	r, ok := invRoleIndex[i]
	return r, ok
}

// AllRoles returns all known Role enums
func AllRoles() []Role {
	return allRoles
}

// Category tags a volume registered with an Oracle. Queries only ever
// return volumes of the category asked for.
type Category string

const (
	CategoryTile = "Tile"
	CategoryDoor = "Door"
)
