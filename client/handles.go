package client

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/APWine/apwine-sdk/contracts"
	"github.com/APWine/apwine-sdk/network"
)

// handleSet is the session's bound contract handles plus the capability they
// were bound with. A set is immutable once built: rebinding constructs a new
// set and swaps the pointer, so an in-flight operation that snapshotted the
// old set keeps using the capability it captured.
type handleSet struct {
	capability Capability

	registry    *contracts.Registry
	ammRegistry *contracts.AMMRegistry
	router      *contracts.AMMRouter

	// controller stays nil until initialization resolves its address
	controller *contracts.Controller
}

func bindHandles(cfg network.Config, capability Capability, controller common.Address) *handleSet {
	backend := capability.Backend()
	set := &handleSet{
		capability:  capability,
		registry:    contracts.NewRegistry(cfg.Registry, backend),
		ammRegistry: contracts.NewAMMRegistry(cfg.AMMRegistry, backend),
		router:      contracts.NewAMMRouter(cfg.AMMRouter, backend),
	}
	if controller != (common.Address{}) {
		set.controller = contracts.NewController(controller, backend)
	}
	return set
}
