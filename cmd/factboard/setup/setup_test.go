package setup_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"

	"github.com/papercomputeco/factboard/cmd/factboard/setup"
	"github.com/papercomputeco/factboard/pkg/config"
	"github.com/papercomputeco/factboard/pkg/eventstream/nop"
	"github.com/papercomputeco/factboard/pkg/eventstream/worker"
	"github.com/papercomputeco/factboard/pkg/logger"
)

// newCmd returns a command carrying the persistent flags and the target
// flags, parsed from args.
func newCmd(args ...string) *cobra.Command {
	var target string
	var timeout time.Duration

	cmd := &cobra.Command{Use: "test"}
	setup.AddPersistentFlags(cmd)
	config.AddStringFlag(cmd, config.Flags, config.FlagTarget, &target)
	config.AddDurationFlag(cmd, config.Flags, config.FlagTimeout, &timeout)

	ExpectWithOffset(1, cmd.ParseFlags(args)).To(Succeed())
	return cmd
}

var _ = Describe("Settings", func() {
	var configDir string

	BeforeEach(func() {
		configDir = filepath.Join(GinkgoT().TempDir(), ".factboard")
		Expect(os.MkdirAll(configDir, 0o755)).To(Succeed())
	})

	writeConfig := func(body string) {
		Expect(os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(body), 0o600)).To(Succeed())
	}

	It("returns defaults when nothing is configured", func() {
		cfg, err := setup.Settings(newCmd("--config-dir", configDir), config.FlagTarget, config.FlagTimeout)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Target.URL).To(Equal(config.NewDefaultConfig().Target.URL))
		Expect(time.Duration(cfg.Target.Timeout)).To(Equal(15 * time.Second))
	})

	It("layers flags over env over the config file", func() {
		writeConfig("[target]\nurl = \"http://from-file\"\ntimeout = \"7s\"\n")

		cfg, err := setup.Settings(newCmd("--config-dir", configDir), config.FlagTarget)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Target.URL).To(Equal("http://from-file"))
		Expect(time.Duration(cfg.Target.Timeout)).To(Equal(7 * time.Second))

		GinkgoT().Setenv("FACTBOARD_TARGET_URL", "http://from-env")
		cfg, err = setup.Settings(newCmd("--config-dir", configDir), config.FlagTarget)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Target.URL).To(Equal("http://from-env"))

		cfg, err = setup.Settings(newCmd("--config-dir", configDir, "--target", "http://from-flag"), config.FlagTarget)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Target.URL).To(Equal("http://from-flag"))
	})

	It("ignores flags that were not requested", func() {
		cfg, err := setup.Settings(newCmd("--config-dir", configDir, "--timeout", "2s"), config.FlagTarget)
		Expect(err).NotTo(HaveOccurred())
		Expect(time.Duration(cfg.Target.Timeout)).To(Equal(15 * time.Second))
	})

	It("fails on a malformed config file", func() {
		writeConfig("not toml [[[")

		_, err := setup.Settings(newCmd("--config-dir", configDir))
		Expect(err).To(MatchError(ContainSubstring("reading config")))
	})
})

var _ = Describe("Logger", func() {
	It("writes JSON records to --log-file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "factboard.log")
		cmd := newCmd("--log-file", path)
		cmd.SetErr(&bytes.Buffer{})

		log, closeLog, err := setup.Logger(cmd)
		Expect(err).NotTo(HaveOccurred())
		log.Info("hello", "count", 2)
		Expect(closeLog()).To(Succeed())

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())

		var record map[string]any
		Expect(json.Unmarshal(bytes.TrimSpace(data), &record)).To(Succeed())
		Expect(record).To(HaveKeyWithValue("msg", "hello"))
		Expect(record).To(HaveKeyWithValue("count", BeNumerically("==", 2)))
	})

	It("writes to the command's stderr without --log-file", func() {
		var errOut bytes.Buffer
		cmd := newCmd()
		cmd.SetErr(&errOut)

		log, closeLog, err := setup.Logger(cmd)
		Expect(err).NotTo(HaveOccurred())
		log.Info("hello")
		Expect(closeLog()).To(Succeed())
		Expect(errOut.String()).To(ContainSubstring("hello"))
	})

	It("has no file logger without --log-file", func() {
		log, closeLog, err := setup.FileLogger(newCmd())
		Expect(err).NotTo(HaveOccurred())
		Expect(log).To(BeNil())
		Expect(closeLog()).To(Succeed())
	})

	It("fails when the log file cannot be opened", func() {
		path := filepath.Join(GinkgoT().TempDir(), "missing", "factboard.log")
		_, _, err := setup.Logger(newCmd("--log-file", path))
		Expect(err).To(MatchError(ContainSubstring("opening log file")))
	})
})

var _ = Describe("Publisher", func() {
	It("builds a nop publisher by default", func() {
		p, err := setup.Publisher(config.NewDefaultConfig(), logger.Nop())
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(BeAssignableToTypeOf(&nop.Publisher{}))
	})

	It("builds a pooled kafka publisher", func() {
		cfg := config.NewDefaultConfig()
		cfg.Events.Provider = config.EventsProviderKafka
		cfg.Events.Brokers = []string{"localhost:9092"}

		p, err := setup.Publisher(cfg, logger.Nop())
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(BeAssignableToTypeOf(&worker.Pool{}))
		Expect(p.Close()).To(Succeed())
	})

	It("requires brokers for kafka", func() {
		cfg := config.NewDefaultConfig()
		cfg.Events.Provider = config.EventsProviderKafka

		_, err := setup.Publisher(cfg, logger.Nop())
		Expect(err).To(MatchError(ContainSubstring("creating kafka publisher")))
	})

	It("rejects unknown providers", func() {
		cfg := config.NewDefaultConfig()
		cfg.Events.Provider = "carrier-pigeon"

		_, err := setup.Publisher(cfg, logger.Nop())
		Expect(err).To(MatchError(ContainSubstring("unknown events provider")))
	})
})

var _ = Describe("Client", func() {
	It("targets the configured collection", func() {
		cfg := config.NewDefaultConfig()
		cfg.Target.URL = "http://localhost:3000/"

		client, err := setup.Client(cfg, logger.Nop())
		Expect(err).NotTo(HaveOccurred())
		Expect(client.Endpoint()).To(Equal("http://localhost:3000/facts"))
	})
})

var _ = Describe("terminal detection", func() {
	It("treats buffers as non-terminals", func() {
		var buf bytes.Buffer
		Expect(setup.IsTerminal(&buf)).To(BeFalse())
		Expect(setup.TerminalWidth(&buf)).To(Equal(0))
	})
})
