package version

import "fmt"

var (
	// GitCommit is the current HEAD set using ldflags.
	GitCommit         string
	CosmosRelease     string
	TendermintRelease string

	Version string
)

const NodeVersion = "0.1.0"

// Info is the machine readable form of Version.
type Info struct {
	Node       string `json:"node"`
	Commit     string `json:"commit,omitempty"`
	CosmosSDK  string `json:"cosmos_sdk,omitempty"`
	Tendermint string `json:"tendermint,omitempty"`
}

func NewInfo() Info {
	return Info{
		Node:       NodeVersion,
		Commit:     GitCommit,
		CosmosSDK:  CosmosRelease,
		Tendermint: TendermintRelease,
	}
}

func (i Info) String() string {
	s := fmt.Sprintf("Cosmos Node Release: %s;", i.Node)
	if i.Commit != "" {
		s += fmt.Sprintf(" Commit: %s;", i.Commit)
	}
	if i.CosmosSDK != "" {
		s += fmt.Sprintf(" Cosmos SDK Release: %s;", i.CosmosSDK)
	}
	if i.Tendermint != "" {
		s += fmt.Sprintf(" Tendermint Release: %s;", i.Tendermint)
	}
	return s
}

func init() {
	Version = NewInfo().String()
}
