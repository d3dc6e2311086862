package common

type Network string

const (
	NetworkMainnet  Network = "mainnet"
	NetworkTestnet  Network = "testnet"
	NetworkDevnet   Network = "devnet"
	NetworkLocalnet Network = "localnet"
)

var fullnodeURLs = map[Network]string{
	NetworkMainnet:  "https://fullnode.mainnet.sui.io:443",
	NetworkTestnet:  "https://fullnode.testnet.sui.io:443",
	NetworkDevnet:   "https://fullnode.devnet.sui.io:443",
	NetworkLocalnet: "http://127.0.0.1:9000",
}

func (n Network) IsSupported() bool {
	_, ok := fullnodeURLs[n]
	return ok
}

// FullnodeURL returns the public fullnode JSON-RPC endpoint of the network.
func (n Network) FullnodeURL() string {
	return fullnodeURLs[n]
}

func (n Network) String() string {
	return string(n)
}
