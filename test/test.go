package test

import (
	"fmt"
	"net"
	"path/filepath"
	"testing"

	"github.com/esummer9/mykeyword/server/profile"
	"github.com/esummer9/mykeyword/server/version"
)

func getUnusedPort() int {
	// Get a random unused port
	listener, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()

	// Get the port number
	port := listener.Addr().(*net.TCPAddr).Port
	return port
}

func GetTestingProfile(t *testing.T) *profile.Profile {
	// Get a temporary directory for the test data.
	dir := t.TempDir()
	mode := "prod"
	port := getUnusedPort()
	return &profile.Profile{
		Mode:     mode,
		Port:     port,
		Data:     dir,
		DSN:      fmt.Sprintf("%s/mykeyword_%s.db", dir, mode),
		Version:  version.GetCurrentVersion(mode),
		Timezone: "UTC",
		UserDict: filepath.Join(dir, "komoran", "user.dict"),
	}
}
