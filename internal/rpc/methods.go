package rpc

// registerAllMethods installs every RPC method on the registry.
func (s *Server) registerAllMethods() {
	// Server information
	s.registry.Register("ping", &PingMethod{})
	s.registry.Register("server_info", &ServerInfoMethod{services: s.services})
	s.registry.Register("version", &VersionMethod{services: s.services})
	s.registry.Register("fee", &FeeMethod{services: s.services})

	// Accounts
	s.registry.Register("account_info", &AccountInfoMethod{services: s.services})
	s.registry.Register("account_tx", &AccountTxMethod{services: s.services})

	// Marketplace
	s.registry.Register("listing", &ListingMethod{services: s.services})
	s.registry.Register("active_listings", &ActiveListingsMethod{services: s.services})
	s.registry.Register("asset_info", &AssetInfoMethod{services: s.services})

	// Transactions
	s.registry.Register("submit", &SubmitMethod{services: s.services})
	s.registry.Register("tx", &TxMethod{services: s.services})
	s.registry.Register("tx_history", &TxHistoryMethod{services: s.services})
}
