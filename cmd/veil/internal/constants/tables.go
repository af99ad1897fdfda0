package constants

// TableUsers is the table holding user records. The schema is owned by the
// data store collaborator; veil only ever reads rows out of it and formats
// them into log lines.
// Used in: users/store.go, users/schema.go, cmd/veil/main.go
const TableUsers = "users"
