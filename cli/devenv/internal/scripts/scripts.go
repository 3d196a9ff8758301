// Package scripts builds the argv of commands executed inside service
// containers. Builders are pure so the lifecycle actions stay easy to test.
package scripts

// DropDatabase removes db if it exists.
func DropDatabase(user, db string) []string {
	return []string{"dropdb", "-U", user, "--if-exists", db}
}

// CreateDatabase creates an empty db owned by user.
func CreateDatabase(user, db string) []string {
	return []string{"createdb", "-U", user, "-O", user, db}
}

// ResetDatabases returns drop/create pairs for every database, in order.
func ResetDatabases(user string, dbs []string) [][]string {
	out := make([][]string, 0, len(dbs)*2)
	for _, db := range dbs {
		out = append(out, DropDatabase(user, db), CreateDatabase(user, db))
	}
	return out
}

// Alembic runs the migration tool; no arguments means upgrade to head.
func Alembic(args ...string) []string {
	if len(args) == 0 {
		args = []string{"upgrade", "head"}
	}
	return append([]string{"alembic"}, args...)
}

// NpmInstall installs Node dependencies from the manifest.
func NpmInstall() []string {
	return []string{"npm", "install"}
}

// PipInstall installs Python dependencies from a requirements file.
func PipInstall(requirements string) []string {
	return []string{"pip", "install", "-r", requirements}
}
