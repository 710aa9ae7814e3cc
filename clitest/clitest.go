// Package clitest contains common utilities and helpers for testing the CLI binary
package clitest

import (
	"net/http"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"
)

// TempSettings is an isolated HOME with a settings directory and a fake Jenkins
type TempSettings struct {
	Home       string
	TestServer *ghttp.Server
	Config     *TmpFile
}

// WithTempSettings should be called in a BeforeEach and returns a new TempSettings with everything setup for you
func WithTempSettings() *TempSettings {
	var err error

	tempSettings := &TempSettings{}

	tempSettings.Home, err = os.MkdirTemp("", "jenkins-release-test-")
	gomega.Expect(err).ToNot(gomega.HaveOccurred())

	settingsPath := filepath.Join(tempSettings.Home, ".jenkins-release")
	gomega.Expect(os.Mkdir(settingsPath, 0700)).To(gomega.Succeed())

	tempSettings.Config = OpenTmpFile(settingsPath, "cli.yml")
	tempSettings.TestServer = ghttp.NewServer()

	return tempSettings
}

// Close should be called in an AfterEach and cleans up the temp directory and server process
func (tempSettings *TempSettings) Close() error {
	tempSettings.TestServer.Close()
	if err := tempSettings.Config.Close(); err != nil {
		return err
	}
	return os.RemoveAll(tempSettings.Home)
}

// WriteDotEnv writes a .env file into Home, the working directory of commands made by Command.
func (tempSettings *TempSettings) WriteDotEnv(contents string) {
	path := filepath.Join(tempSettings.Home, ".env")
	gomega.Expect(os.WriteFile(path, []byte(contents), 0600)).To(gomega.Succeed())
}

// Command returns the CLI at bin run from Home with a minimal environment,
// so no settings of the developer running the tests leak in.
func (tempSettings *TempSettings) Command(bin string, args ...string) *exec.Cmd {
	command := exec.Command(bin, args...)
	command.Dir = tempSettings.Home
	command.Env = []string{
		"HOME=" + tempSettings.Home,
		"USERPROFILE=" + tempSettings.Home,
		"PATH=" + os.Getenv("PATH"),
	}
	return command
}

// MockTriggerResponse describes one expected buildWithParameters call.
type MockTriggerResponse struct {
	Job      string
	Query    string
	User     string
	Token    string
	Status   int
	Response string
}

// AppendTriggerHandler stubs out the provided MockTriggerResponse calls in order.
// When User is empty no credential validation is performed.
func (tempSettings *TempSettings) AppendTriggerHandler(handlers ...MockTriggerResponse) {
	for _, handler := range handlers {
		verify := []http.HandlerFunc{
			ghttp.VerifyRequest("POST", "/job/"+handler.Job+"/buildWithParameters", handler.Query),
		}
		if handler.User != "" {
			verify = append(verify, ghttp.VerifyBasicAuth(handler.User, handler.Token))
		}
		verify = append(verify, ghttp.RespondWith(handler.Status, handler.Response))

		tempSettings.TestServer.AppendHandlers(ghttp.CombineHandlers(verify...))
	}
}

// TmpFile wraps a temporary file on disk for utility.
type TmpFile struct {
	RootDir string
	Path    string
	File    *os.File
	closed  bool
}

// Close closes the file unless Write already did.
func (tempFile *TmpFile) Close() error {
	if tempFile.closed {
		return nil
	}
	tempFile.closed = true
	return tempFile.File.Close()
}

// Write will write the given contents to the file on disk and close it.
func (f *TmpFile) Write(contents []byte) {
	_, err := f.File.Write(contents)
	gomega.Expect(err).ToNot(gomega.HaveOccurred())
	gomega.Expect(f.Close()).To(gomega.Succeed())
}

// OpenTmpFile will create a new temporary file in the provided directory with a name of the given path.
func OpenTmpFile(directory string, path string) *TmpFile {
	config := &TmpFile{
		RootDir: directory,
		Path:    filepath.Join(directory, path),
	}

	gomega.Expect(os.MkdirAll(filepath.Dir(config.Path), 0700)).To(gomega.Succeed())

	file, err := os.OpenFile(config.Path, os.O_RDWR|os.O_CREATE, 0600)
	gomega.Expect(err).ToNot(gomega.HaveOccurred())

	config.File = file
	return config
}
