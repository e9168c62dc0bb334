package user

// User is the authenticated caller every read and write is scoped to. The uid
// comes from the identity collaborator and is treated as an opaque token.
type User struct {
	Uid         string
	DisplayName string
	Settings    Settings
}

type Settings struct {
	// Timezone is the caller's preferred zone, used as the default when a
	// request does not name one explicitly. Aggregation never reads it
	// implicitly.
	Timezone string
}
