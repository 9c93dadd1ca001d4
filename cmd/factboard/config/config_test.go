package configcmder_test

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	configcmder "github.com/papercomputeco/factboard/cmd/factboard/config"
	"github.com/papercomputeco/factboard/pkg/config"
)

var _ = Describe("NewConfigCmd", func() {
	It("creates a command with the correct use string", func() {
		cmd := configcmder.NewConfigCmd()
		Expect(cmd.Use).To(Equal("config"))
	})

	It("has set, get, and list subcommands", func() {
		cmd := configcmder.NewConfigCmd()
		cmds := cmd.Commands()
		subcommands := make([]string, 0, len(cmds))
		for _, sub := range cmds {
			subcommands = append(subcommands, sub.Name())
		}
		Expect(subcommands).To(ContainElements("set", "get", "list"))
	})
})

var _ = Describe("Config command execution", func() {
	var (
		tmpDir  string
		origDir string
		out     *bytes.Buffer
	)

	run := func(args ...string) error {
		cmd := configcmder.NewConfigCmd()
		cmd.SetOut(out)
		cmd.SetErr(out)
		cmd.SetArgs(args)
		return cmd.Execute()
	}

	BeforeEach(func() {
		var err error
		tmpDir = GinkgoT().TempDir()
		GinkgoT().Setenv("HOME", filepath.Join(tmpDir, "home"))

		origDir, err = os.Getwd()
		Expect(err).NotTo(HaveOccurred())

		// Create a local .factboard dir so the manager picks it up
		err = os.MkdirAll(filepath.Join(tmpDir, ".factboard"), 0o755)
		Expect(err).NotTo(HaveOccurred())

		err = os.Chdir(tmpDir)
		Expect(err).NotTo(HaveOccurred())

		out = &bytes.Buffer{}
	})

	AfterEach(func() {
		Expect(os.Chdir(origDir)).To(Succeed())
	})

	Describe("set subcommand", func() {
		It("sets a config value successfully", func() {
			Expect(run("set", "target.url", "http://localhost:3000")).To(Succeed())
			Expect(out.String()).To(ContainSubstring("target.url"))

			data, err := os.ReadFile(filepath.Join(tmpDir, ".factboard", "config.toml"))
			Expect(err).NotTo(HaveOccurred())

			cfg, err := config.ParseConfigTOML(data)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Target.URL).To(Equal("http://localhost:3000"))
		})

		It("rejects unknown keys", func() {
			err := run("set", "invalid_key", "value")
			Expect(err).To(MatchError(ContainSubstring("unknown config key")))
		})

		It("rejects invalid durations", func() {
			Expect(run("set", "target.timeout", "soon")).NotTo(Succeed())
		})

		It("rejects unknown event providers", func() {
			Expect(run("set", "events.provider", "carrier-pigeon")).NotTo(Succeed())
		})

		It("requires exactly two arguments", func() {
			Expect(run("set", "target.url")).NotTo(Succeed())
			Expect(run("set")).NotTo(Succeed())
		})
	})

	Describe("get subcommand", func() {
		It("gets a previously set value", func() {
			Expect(run("set", "widget.title", "Deep Facts")).To(Succeed())

			out.Reset()
			Expect(run("get", "widget.title")).To(Succeed())
			Expect(out.String()).To(ContainSubstring("Deep Facts"))
		})

		It("shows the default for an unset key", func() {
			Expect(run("get", "target.url")).To(Succeed())
			Expect(out.String()).To(ContainSubstring(config.NewDefaultConfig().Target.URL))
		})

		It("rejects unknown keys", func() {
			Expect(run("get", "invalid_key")).NotTo(Succeed())
		})

		It("requires exactly one argument", func() {
			Expect(run("get")).NotTo(Succeed())
		})
	})

	Describe("list subcommand", func() {
		It("lists every key when no config exists", func() {
			Expect(run("list")).To(Succeed())
			for _, key := range config.ValidConfigKeys() {
				Expect(out.String()).To(ContainSubstring(key))
			}
		})

		It("shows stored values", func() {
			Expect(run("set", "events.brokers", "kafka-1:9092,kafka-2:9092")).To(Succeed())

			out.Reset()
			Expect(run("list")).To(Succeed())
			Expect(out.String()).To(ContainSubstring("Using config file:"))
			Expect(out.String()).To(ContainSubstring(`"kafka-1:9092,kafka-2:9092"`))
		})

		It("rejects any arguments", func() {
			Expect(run("list", "extra")).NotTo(Succeed())
		})
	})
})
