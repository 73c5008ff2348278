package pool

import (
	"github.com/bsv-blockchain/go-sdk/script"

	"github.com/runepool/librunepool-go/fixed"
	"github.com/runepool/librunepool-go/host"
	"github.com/runepool/librunepool-go/utxo"
)

// ConfigAnchor is the anchor target name instruction specs use for the
// pool's config output.
const ConfigAnchor = "cfg"

// Config is the pool's persisted configuration account: the owning
// program, the rune the pool trades, fee policy, and the config output
// other instructions anchor against.
type Config struct {
	// Program is the pool program's account.
	Program host.Pubkey

	// PoolRune is the rune this pool provides liquidity for.
	PoolRune utxo.RuneID

	// DepositFee is the exact satoshi value of the fee output a deposit
	// instruction must supply.
	DepositFee uint64

	// FeeRate is the minimum accepted fee rate in satoshis per byte.
	FeeRate uint64

	// ChangeScript receives withdrawal change.
	ChangeScript *script.Script

	configUtxo fixed.Option[utxo.Meta]
}

// RecordConfigUtxo records the output currently holding the config
// account's dust, the target of ConfigAnchor matches.
func (c *Config) RecordConfigUtxo(meta utxo.Meta) {
	c.configUtxo.Set(meta)
}

// AnchorMeta implements matcher.AnchorResolver for the pool's anchors.
func (c *Config) AnchorMeta(target string) (utxo.Meta, bool) {
	if target != ConfigAnchor {
		return utxo.Meta{}, false
	}
	return c.configUtxo.Get()
}
