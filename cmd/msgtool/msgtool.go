/*
github.com/tcrain/consmsg - Binary wire messages for consensus nodes.
Copyright (C) 2020 The project authors - tcrain

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.

*/

/*
This package encodes, decodes and verifies wire messages from the command line.

	msgtool -keygen [-seed <hex>]
	msgtool -demo <kind> [-seed <hex>] [-config node.yaml]
	msgtool -decode <hex> [-config node.yaml]

A demo message is signed by the key derived from the seed, consensus messages use validator id 0.
It is built for the network id of the config file.
To verify a consensus message the config file must list the public key of its validator.
*/
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"net/netip"
	"os"
	"strings"
	"time"

	"github.com/tcrain/consmsg/config"
	"github.com/tcrain/consmsg/consensus/auth/sig"
	"github.com/tcrain/consmsg/consensus/logging"
	"github.com/tcrain/consmsg/consensus/messages"
	"github.com/tcrain/consmsg/consensus/messagetypes"
	"github.com/tcrain/consmsg/consensus/msgproc"
	"github.com/tcrain/consmsg/consensus/types"
)

// the kinds of messages that can be created with -demo
var demoKinds = []string{"connect", "propose", "prevote", "precommit", "commit",
	"issue", "transfer", "vote_validator", "vote_config"}

func main() {
	var keygen bool
	var demoKind, decodeHex, seedHex, configPath string

	flag.BoolVar(&keygen, "keygen", false, "Generate a key and print its seed and public key")
	flag.StringVar(&demoKind, "demo", "", "Encode a sample message, one of: "+strings.Join(demoKinds, ", "))
	flag.StringVar(&decodeHex, "decode", "", "Hex encoded message to decode and verify")
	flag.StringVar(&seedHex, "seed", "", "Hex encoded 32 byte seed of the signing key, random if empty")
	flag.StringVar(&configPath, "config", "", "Path to the YAML node config")
	flag.Parse()

	cfg := config.DefaultNodeConfig()
	if configPath != "" {
		var err error
		if cfg, err = config.LoadNodeConfig(configPath); err != nil {
			logging.Error(err)
			os.Exit(1)
		}
	}
	if cfg.LogLevel != "" {
		if err := logging.SetLevel(cfg.LogLevel); err != nil {
			logging.Error(err)
			os.Exit(1)
		}
	}

	var err error
	switch {
	case keygen:
		err = runKeygen(os.Stdout, seedHex)
	case demoKind != "":
		err = runDemo(os.Stdout, demoKind, seedHex, cfg.NetworkID)
	case decodeHex != "":
		err = runDecode(os.Stdout, decodeHex, cfg)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		logging.Error(err)
		os.Exit(1)
	}
}

func loadKey(seedHex string) (*sig.SecretKey, error) {
	if seedHex == "" {
		return sig.GenerateKey()
	}
	seed, err := hex.DecodeString(seedHex)
	if err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}
	return sig.NewSecretKeyFromSeed(seed)
}

func runKeygen(out io.Writer, seedHex string) error {
	priv, err := loadKey(seedHex)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "seed: %x\npub: %v\n", priv.Seed(), priv.GetPub())
	return err
}

func buildDemo(kind string, priv *sig.SecretKey) (messagetypes.Any, error) {
	now := time.Now()
	prev := types.GetHash([]byte("genesis"))
	txs := []types.Hash{types.GetHash([]byte("tx0")), types.GetHash([]byte("tx1"))}
	switch kind {
	case "connect":
		return messagetypes.NewConnect(netip.MustParseAddrPort("127.0.0.1:2000"), now, priv)
	case "propose":
		return messagetypes.NewPropose(0, 1, 0, now, prev, txs, priv)
	case "prevote":
		return messagetypes.NewPrevote(0, 1, 0, prev, 0, priv)
	case "precommit":
		return messagetypes.NewPrecommit(0, 1, 0, prev, txs[0], priv)
	case "commit":
		return messagetypes.NewCommit(0, 1, 0, txs[0], priv)
	case "issue":
		return messagetypes.NewTxIssue("demo", 100, 1, priv)
	case "transfer":
		return messagetypes.NewTxTransfer([]messagetypes.TransferOutput{{To: priv.GetPub(), Amount: 10}}, 1, priv)
	case "vote_validator":
		return messagetypes.NewTxVoteValidator(priv.GetPub(), 10, true, 1, priv)
	case "vote_config":
		return messagetypes.NewTxVoteConfig(10, []byte("max_message_size: 1024"), 1, priv)
	default:
		return nil, fmt.Errorf("unknown demo kind %q, expected one of: %s", kind, strings.Join(demoKinds, ", "))
	}
}

// runDemo prints a sample message for the network in hex.
func runDemo(out io.Writer, kind, seedHex string, networkID uint8) error {
	priv, err := loadKey(seedHex)
	if err != nil {
		return err
	}
	m, err := buildDemo(kind, priv)
	if err != nil {
		return err
	}
	raw := m.Raw()
	if raw.NetworkID() != networkID {
		// the header size is fixed so the body, including its segment offsets, is unchanged
		raw, err = messages.NewRawMessageNetwork(networkID, raw.MessageClass(), raw.MessageType(), raw.Body(), priv)
		if err != nil {
			return err
		}
	}
	logging.Infof("Created %v on network %d signed by %v", m, networkID, priv.GetPub())
	_, err = fmt.Fprintln(out, hex.EncodeToString(raw.Bytes()))
	return err
}

func runDecode(out io.Writer, hexStr string, cfg *config.NodeConfig) error {
	buff, err := hex.DecodeString(strings.TrimSpace(hexStr))
	if err != nil {
		return fmt.Errorf("invalid hex message: %w", err)
	}
	keys, err := msgproc.StaticKeyRingFromConfig(cfg)
	if err != nil {
		return err
	}
	res := msgproc.Process(buff, keys, cfg.MaxMessageSize)
	if res.Msg == nil {
		return res.Err
	}
	raw := res.Msg.Raw()
	fmt.Fprintf(out, "tag: %s\nnetwork: %d\nsize: %d\nhash: %v\nmessage: %v\n",
		messages.TagName(raw.MessageClass(), raw.MessageType()), raw.NetworkID(), raw.Len(), res.Msg.Hash(), res.Msg)
	if res.Err != nil {
		_, err = fmt.Fprintf(out, "signature: not checked (%v)\n", res.Err)
		return err
	}
	_, err = fmt.Fprintf(out, "signature valid: %v\n", res.Valid)
	return err
}
