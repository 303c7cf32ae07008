package skstr

import "github.com/pfsalab/skstr/internal/costmodel"

// MMLNodes implements costmodel.Graph, letting an Estimator walk the
// acceptor without that package importing this one back.
func (p *PFSA) MMLNodes() []costmodel.Node {
	nodes := p.Nodes()
	out := make([]costmodel.Node, len(nodes))
	for i, n := range nodes {
		freqs := make([]int, len(n.Trans))
		for j, a := range n.Trans {
			freqs[j] = a.Freq
		}
		out[i] = costmodel.Node{NOut: n.NOut, Freqs: freqs}
	}
	return out
}
