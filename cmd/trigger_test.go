package cmd_test

import (
	"net/http"
	"os/exec"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
	"github.com/onsi/gomega/gexec"

	"github.com/jenkins-release/jenkins-release/clitest"
)

var _ = Describe("Trigger", func() {
	var (
		tempSettings *clitest.TempSettings
		command      *exec.Cmd
	)

	BeforeEach(func() {
		tempSettings = clitest.WithTempSettings()
	})

	AfterEach(func() {
		Expect(tempSettings.Close()).To(Succeed())
	})

	Describe("without a job name", func() {
		BeforeEach(func() {
			command = tempSettings.Command(pathCLI)
		})

		It("prints usage and exits 1 without calling Jenkins", func() {
			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).ShouldNot(HaveOccurred())

			Eventually(session.Out).Should(gbytes.Say("Usage: jenkins-release <job_name>"))
			Eventually(session).Should(gexec.Exit(1))
			Expect(tempSettings.TestServer.ReceivedRequests()).Should(BeEmpty())
		})
	})

	Describe("with flags", func() {
		BeforeEach(func() {
			command = tempSettings.Command(pathCLI,
				"--host", tempSettings.TestServer.URL(),
				"--user", "developer",
				"--token", "secret",
				"deploy", "env=prod", "ignored",
			)
		})

		It("exits 0 when Jenkins answers 201", func() {
			tempSettings.AppendTriggerHandler(clitest.MockTriggerResponse{
				Job:    "deploy",
				Query:  "env=prod",
				User:   "developer",
				Token:  "secret",
				Status: http.StatusCreated,
			})

			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).ShouldNot(HaveOccurred())

			Eventually(session.Out).Should(gbytes.Say("Jenkins job 'deploy' triggered successfully"))
			Eventually(session).Should(gexec.Exit(0))
			Expect(tempSettings.TestServer.ReceivedRequests()).Should(HaveLen(1))
		})

		It("exits 2 and echoes the body when Jenkins answers 500", func() {
			tempSettings.AppendTriggerHandler(clitest.MockTriggerResponse{
				Job:      "deploy",
				Query:    "env=prod",
				Status:   http.StatusInternalServerError,
				Response: "Internal Error",
			})

			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).ShouldNot(HaveOccurred())

			Eventually(session.Out).Should(gbytes.Say("status code: 500"))
			Eventually(session.Out).Should(gbytes.Say("Internal Error"))
			Eventually(session).Should(gexec.Exit(2))
		})
	})

	Describe("when Jenkins is unreachable", func() {
		It("exits 3 and never reports success", func() {
			url := tempSettings.TestServer.URL()
			tempSettings.TestServer.Close()
			command = tempSettings.Command(pathCLI, "--host", url, "deploy")

			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).ShouldNot(HaveOccurred())

			Eventually(session).Should(gexec.Exit(3))
			Expect(session.Out).ShouldNot(gbytes.Say("successfully"))
		})
	})

	Describe("with a settings file", func() {
		BeforeEach(func() {
			tempSettings.Config.Write([]byte("host: " + tempSettings.TestServer.URL() + "\nuser: file-user\ntoken: ${JENKINS_TEST_TOKEN}\n"))
			tempSettings.WriteDotEnv("JENKINS_TEST_TOKEN=dotenv-token\nJENKINS_RELEASE_USER=dotenv-user\n")
			command = tempSettings.Command(pathCLI, "deploy")
		})

		It("expands variables from .env", func() {
			tempSettings.AppendTriggerHandler(clitest.MockTriggerResponse{
				Job:    "deploy",
				User:   "dotenv-user",
				Token:  "dotenv-token",
				Status: http.StatusOK,
			})

			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).ShouldNot(HaveOccurred())

			Eventually(session).Should(gexec.Exit(0))
		})

		It("lets the environment win over .env", func() {
			command.Env = append(command.Env, "JENKINS_TEST_TOKEN=env-token")
			tempSettings.AppendTriggerHandler(clitest.MockTriggerResponse{
				Job:    "deploy",
				User:   "dotenv-user",
				Token:  "env-token",
				Status: http.StatusOK,
			})

			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).ShouldNot(HaveOccurred())

			Eventually(session).Should(gexec.Exit(0))
		})
	})

	Describe("without a host", func() {
		It("exits 1 with a configuration error", func() {
			command = tempSettings.Command(pathCLI, "deploy")

			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).ShouldNot(HaveOccurred())

			Eventually(session.Err).Should(gbytes.Say("no Jenkins host configured"))
			Eventually(session).Should(gexec.Exit(1))
		})
	})

	Describe("--version", func() {
		It("prints the version", func() {
			command = tempSettings.Command(pathCLI, "--version")

			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).ShouldNot(HaveOccurred())

			Eventually(session.Out).Should(gbytes.Say(`0\.0\.0-dev\+dirty-local-tree`))
			Eventually(session).Should(gexec.Exit(0))
		})
	})
})
