package lstm

import (
	"fmt"
	"math"
	"math/rand"

	"stock_analyzer/internal/feature/forecast/domain"
)

// tensor is a dense row-major matrix carrying its own gradient buffer.
type tensor struct {
	rows, cols int
	w, g       []float64
}

func newTensor(rows, cols int) *tensor {
	return &tensor{
		rows: rows,
		cols: cols,
		w:    make([]float64, rows*cols),
		g:    make([]float64, rows*cols),
	}
}

func (t *tensor) zeroGrad() {
	for i := range t.g {
		t.g[i] = 0
	}
}

// glorotInit fills the weights uniformly in [-limit, limit] with
// limit = sqrt(6 / (fanIn + fanOut)).
func (t *tensor) glorotInit(fanIn, fanOut int, rng *rand.Rand) {
	limit := math.Sqrt(6 / float64(fanIn+fanOut))
	for i := range t.w {
		t.w[i] = (rng.Float64()*2 - 1) * limit
	}
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// lstmLayer is a single LSTM layer. The four gate blocks (input, forget,
// candidate, output) are stacked row-wise in w, u and b.
type lstmLayer struct {
	in, hidden int
	w          *tensor // 4*hidden x in
	u          *tensor // 4*hidden x hidden
	b          *tensor // 4*hidden x 1
}

func newLSTMLayer(in, hidden int, rng *rand.Rand) *lstmLayer {
	l := &lstmLayer{
		in:     in,
		hidden: hidden,
		w:      newTensor(4*hidden, in),
		u:      newTensor(4*hidden, hidden),
		b:      newTensor(4*hidden, 1),
	}
	l.w.glorotInit(in, hidden, rng)
	l.u.glorotInit(hidden, hidden, rng)
	// forget-gate bias starts at 1 so early training does not flush state
	for i := hidden; i < 2*hidden; i++ {
		l.b.w[i] = 1
	}
	return l
}

// lstmCache records per-timestep activations needed for backprop.
type lstmCache struct {
	x, hPrev, cPrev  [][]float64
	gi, gf, gg, gOut [][]float64
	c, tanhC, h      [][]float64
}

// forward runs the layer over a sequence of input vectors and returns the
// hidden state at every timestep.
func (l *lstmLayer) forward(seq [][]float64) ([][]float64, *lstmCache) {
	steps := len(seq)
	cache := &lstmCache{
		x:     make([][]float64, steps),
		hPrev: make([][]float64, steps),
		cPrev: make([][]float64, steps),
		gi:    make([][]float64, steps),
		gf:    make([][]float64, steps),
		gg:    make([][]float64, steps),
		gOut:  make([][]float64, steps),
		c:     make([][]float64, steps),
		tanhC: make([][]float64, steps),
		h:     make([][]float64, steps),
	}

	h := make([]float64, l.hidden)
	c := make([]float64, l.hidden)

	for t := 0; t < steps; t++ {
		x := seq[t]
		cache.x[t] = x
		cache.hPrev[t] = h
		cache.cPrev[t] = c

		// z = W*x + U*h + b for all four gate blocks at once
		z := make([]float64, 4*l.hidden)
		for r := 0; r < 4*l.hidden; r++ {
			sum := l.b.w[r]
			for j := 0; j < l.in; j++ {
				sum += l.w.w[r*l.in+j] * x[j]
			}
			for j := 0; j < l.hidden; j++ {
				sum += l.u.w[r*l.hidden+j] * h[j]
			}
			z[r] = sum
		}

		gi := make([]float64, l.hidden)
		gf := make([]float64, l.hidden)
		gg := make([]float64, l.hidden)
		gout := make([]float64, l.hidden)
		cNew := make([]float64, l.hidden)
		tanhC := make([]float64, l.hidden)
		hNew := make([]float64, l.hidden)
		for j := 0; j < l.hidden; j++ {
			gi[j] = sigmoid(z[j])
			gf[j] = sigmoid(z[l.hidden+j])
			gg[j] = math.Tanh(z[2*l.hidden+j])
			gout[j] = sigmoid(z[3*l.hidden+j])
			cNew[j] = gf[j]*c[j] + gi[j]*gg[j]
			tanhC[j] = math.Tanh(cNew[j])
			hNew[j] = gout[j] * tanhC[j]
		}

		cache.gi[t] = gi
		cache.gf[t] = gf
		cache.gg[t] = gg
		cache.gOut[t] = gout
		cache.c[t] = cNew
		cache.tanhC[t] = tanhC
		cache.h[t] = hNew

		h, c = hNew, cNew
	}

	return cache.h, cache
}

// backward propagates per-timestep hidden-state gradients through the
// layer, accumulating parameter gradients and returning input gradients.
func (l *lstmLayer) backward(cache *lstmCache, dh [][]float64) [][]float64 {
	steps := len(cache.x)
	dx := make([][]float64, steps)

	dhNext := make([]float64, l.hidden)
	dcNext := make([]float64, l.hidden)

	for t := steps - 1; t >= 0; t-- {
		da := make([]float64, 4*l.hidden)
		dhPrev := make([]float64, l.hidden)
		dcPrev := make([]float64, l.hidden)

		for j := 0; j < l.hidden; j++ {
			dhTot := dhNext[j]
			if dh[t] != nil {
				dhTot += dh[t][j]
			}

			gout := cache.gOut[t][j]
			tanhC := cache.tanhC[t][j]
			dc := dhTot*gout*(1-tanhC*tanhC) + dcNext[j]

			gi := cache.gi[t][j]
			gf := cache.gf[t][j]
			gg := cache.gg[t][j]

			do := dhTot * tanhC
			di := dc * gg
			dg := dc * gi
			df := dc * cache.cPrev[t][j]
			dcPrev[j] = dc * gf

			da[j] = di * gi * (1 - gi)
			da[l.hidden+j] = df * gf * (1 - gf)
			da[2*l.hidden+j] = dg * (1 - gg*gg)
			da[3*l.hidden+j] = do * gout * (1 - gout)
		}

		dxt := make([]float64, l.in)
		for r := 0; r < 4*l.hidden; r++ {
			g := da[r]
			if g == 0 {
				continue
			}
			l.b.g[r] += g
			for j := 0; j < l.in; j++ {
				l.w.g[r*l.in+j] += g * cache.x[t][j]
				dxt[j] += l.w.w[r*l.in+j] * g
			}
			for j := 0; j < l.hidden; j++ {
				l.u.g[r*l.hidden+j] += g * cache.hPrev[t][j]
				dhPrev[j] += l.u.w[r*l.hidden+j] * g
			}
		}

		dx[t] = dxt
		dhNext = dhPrev
		dcNext = dcPrev
	}

	return dx
}

// network is a stacked two-layer LSTM with a scalar dense head.
type network struct {
	l1, l2 *lstmLayer
	wd     *tensor // 1 x hidden
	bd     *tensor // 1 x 1

	params []*tensor
}

func newNetwork(units int, rng *rand.Rand) *network {
	n := &network{
		l1: newLSTMLayer(1, units, rng),
		l2: newLSTMLayer(units, units, rng),
		wd: newTensor(1, units),
		bd: newTensor(1, 1),
	}
	n.wd.glorotInit(units, 1, rng)
	n.params = []*tensor{
		n.l1.w, n.l1.u, n.l1.b,
		n.l2.w, n.l2.u, n.l2.b,
		n.wd, n.bd,
	}
	return n
}

// forward runs one window through both layers and the dense head.
func (n *network) forward(window []float64) (float64, *lstmCache, *lstmCache) {
	seq := make([][]float64, len(window))
	for t, v := range window {
		seq[t] = []float64{v}
	}

	h1, c1 := n.l1.forward(seq)
	h2, c2 := n.l2.forward(h1)

	last := h2[len(h2)-1]
	y := n.bd.w[0]
	for j := range last {
		y += n.wd.w[j] * last[j]
	}
	return y, c1, c2
}

// backward pushes the scalar output gradient through the dense head and
// both LSTM layers, accumulating parameter gradients.
func (n *network) backward(c1, c2 *lstmCache, dy float64) {
	steps := len(c2.x)
	last := c2.h[steps-1]

	dhLast := make([]float64, n.l2.hidden)
	for j := range dhLast {
		n.wd.g[j] += dy * last[j]
		dhLast[j] = n.wd.w[j] * dy
	}
	n.bd.g[0] += dy

	dh2 := make([][]float64, steps)
	dh2[steps-1] = dhLast

	dh1 := n.l2.backward(c2, dh2)
	n.l1.backward(c1, dh1)
}

// predict runs a window through the network without training bookkeeping.
func (n *network) predict(window []float64) float64 {
	y, _, _ := n.forward(window)
	return y
}

// adam is the Adam optimizer with Keras-compatible defaults.
type adam struct {
	lr, beta1, beta2, eps float64
	t                     int
	m, v                  [][]float64
}

func newAdam(params []*tensor) *adam {
	a := &adam{lr: 0.001, beta1: 0.9, beta2: 0.999, eps: 1e-7}
	a.m = make([][]float64, len(params))
	a.v = make([][]float64, len(params))
	for i, p := range params {
		a.m[i] = make([]float64, len(p.w))
		a.v[i] = make([]float64, len(p.w))
	}
	return a
}

func (a *adam) step(params []*tensor) {
	a.t++
	c1 := 1 - math.Pow(a.beta1, float64(a.t))
	c2 := 1 - math.Pow(a.beta2, float64(a.t))
	for i, p := range params {
		for j, g := range p.g {
			a.m[i][j] = a.beta1*a.m[i][j] + (1-a.beta1)*g
			a.v[i][j] = a.beta2*a.v[i][j] + (1-a.beta2)*g*g
			mHat := a.m[i][j] / c1
			vHat := a.v[i][j] / c2
			p.w[j] -= a.lr * mHat / (math.Sqrt(vHat) + a.eps)
		}
	}
}

// train fits the network to sliding windows with mean-squared-error loss.
func (n *network) train(windows [][]float64, targets []float64, epochs, batchSize int, rng *rand.Rand) error {
	opt := newAdam(n.params)
	idx := make([]int, len(windows))
	for i := range idx {
		idx[i] = i
	}

	for epoch := 0; epoch < epochs; epoch++ {
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

		for off := 0; off < len(idx); off += batchSize {
			end := off + batchSize
			if end > len(idx) {
				end = len(idx)
			}
			batch := idx[off:end]

			for _, p := range n.params {
				p.zeroGrad()
			}

			var loss float64
			for _, k := range batch {
				y, c1, c2 := n.forward(windows[k])
				diff := y - targets[k]
				loss += diff * diff
				n.backward(c1, c2, 2*diff/float64(len(batch)))
			}
			loss /= float64(len(batch))
			if math.IsNaN(loss) || math.IsInf(loss, 0) {
				return fmt.Errorf("%w: non-finite loss at epoch %d", domain.ErrTrainingFailed, epoch)
			}

			opt.step(n.params)
		}
	}
	return nil
}
