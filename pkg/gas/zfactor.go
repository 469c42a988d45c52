package gas

import (
	"math"

	"github.com/alexiusacademia/gopvt/pkg/numeric"
	"github.com/alexiusacademia/gopvt/pkg/pvt"
)

// Z-factor correlation variants.
const (
	Papay                  pvt.Variant = "Papay"
	BrillBeggs             pvt.Variant = "Brill-Beggs"
	HallYarborough         pvt.Variant = "Hall-Yarborough"
	Gopal                  pvt.Variant = "Gopal"
	DranchukAbouKassem     pvt.Variant = "Dranchuk-Abou-Kassem"
	DranchukPurvisRobinson pvt.Variant = "Dranchuk-Purvis-Robinson"
	Shell                  pvt.Variant = "Shell"
	LeeKesler              pvt.Variant = "Lee-Kesler"
)

// ZInput is the state at which a Z-factor is evaluated.
type ZInput struct {
	P     float64        // pressure, psia
	T     float64        // temperature, °R
	Pc    Pseudocritical // use WichertAziz first for sour gas
	Omega float64        // acentric factor, read by Lee-Kesler only
	// Solver configures the implicit correlations. The zero value means
	// numeric.DefaultSettings.
	Solver numeric.Settings
}

// Reduced returns (Ppr, Tpr).
func (in ZInput) Reduced() (ppr, tpr float64) {
	return in.Pc.Reduced(in.P, in.T)
}

func (in ZInput) ppr() float64 { return in.P / in.Pc.Ppc }
func (in ZInput) tpr() float64 { return in.T / in.Pc.Tpc }

func validateZ(in ZInput) error {
	return pvt.FirstError(
		pvt.Pressure("pressure", in.P),
		pvt.Temperature("temperature", in.T),
		in.Pc.Validate(),
	)
}

func reducedLimits(pprLo, pprHi, tprLo, tprHi float64) []pvt.Limit[ZInput] {
	return []pvt.Limit[ZInput]{
		pvt.Within("Ppr", pprLo, pprHi, ZInput.ppr),
		pvt.Within("Tpr", tprLo, tprHi, ZInput.tpr),
	}
}

// ZPapay is Papay's explicit fit (1968).
func ZPapay(ppr, tpr float64) float64 {
	return 1 - 3.52*ppr/math.Pow(10, 0.9813*tpr) + 0.274*ppr*ppr/math.Pow(10, 0.8157*tpr)
}

type brillBeggsTerms struct {
	a, b, c, d float64
}

func brillBeggs(ppr, tpr float64) brillBeggsTerms {
	return brillBeggsTerms{
		a: 1.39*math.Sqrt(tpr-0.92) - 0.36*tpr - 0.10,
		b: (0.62-0.23*tpr)*ppr + (0.066/(tpr-0.86)-0.037)*ppr*ppr + 0.32*math.Pow(ppr, 6)/math.Pow(10, 9*(tpr-1)),
		c: 0.132 - 0.32*math.Log10(tpr),
		d: math.Pow(10, 0.3106-0.49*tpr+0.1824*tpr*tpr),
	}
}

// ZBrillBeggs is the Brill-Beggs explicit fit (1974).
func ZBrillBeggs(ppr, tpr float64) float64 {
	bb := brillBeggs(ppr, tpr)
	return bb.a + (1-bb.a)*math.Exp(-bb.b) + bb.c*math.Pow(ppr, bb.d)
}

// gopalCoeffs[i][j] gives (a, b, c, d) of z = Ppr(a Tpr + b) + c Tpr + d for
// Ppr band i (0.2-1.2, 1.2-2.8, 2.8-5.4) and Tpr band j (1.05-1.2, 1.2-1.4,
// 1.4-2.0, 2.0-3.0).
var gopalCoeffs = [3][4][4]float64{
	{
		{1.6643, -2.2114, -0.3647, 1.4385},
		{0.5222, -0.8511, -0.0364, 1.0490},
		{0.1391, -0.2988, 0.0007, 0.9969},
		{0.0295, -0.0825, 0.0009, 0.9967},
	},
	{
		{-1.3570, 1.4942, 4.6315, -4.7009},
		{0.1717, -0.3232, 0.5869, 0.1229},
		{0.0984, -0.2053, 0.0621, 0.8580},
		{0.0211, -0.0527, 0.0127, 0.9549},
	},
	{
		{-0.3278, 0.4752, 1.8223, -1.9036},
		{-0.2521, 0.3871, 1.6087, -1.6635},
		{-0.0284, 0.0625, 0.4714, -0.0011},
		{0.0041, 0.0039, 0.0607, 0.7927},
	},
}

// gopalCell picks the table cell. Values outside the table use the nearest
// band.
func gopalCell(ppr, tpr float64) (i, j int) {
	switch {
	case ppr <= 1.2:
		i = 0
	case ppr <= 2.8:
		i = 1
	case ppr <= 5.4:
		i = 2
	default:
		i = 3
	}
	switch {
	case tpr <= 1.2:
		j = 0
	case tpr <= 1.4:
		j = 1
	case tpr <= 2.0:
		j = 2
	default:
		j = 3
	}
	return i, j
}

// ZGopal is Gopal's piecewise-linear fit of the Standing-Katz chart (1977).
func ZGopal(ppr, tpr float64) float64 {
	i, j := gopalCell(ppr, tpr)
	if i == 3 {
		return ppr*math.Pow(0.711+3.66*tpr, -1.4667) - 1.637/(0.319*tpr+0.522) + 2.071
	}
	k := gopalCoeffs[i][j]
	return ppr*(k[0]*tpr+k[1]) + k[2]*tpr + k[3]
}

// ZShell is the Shell Oil Company explicit fit as published by Kumar (2004).
func ZShell(ppr, tpr float64) float64 {
	za := -0.101 - 0.36*tpr + 1.3868*math.Sqrt(tpr-0.919)
	zb := 0.021 + 0.04275/(tpr-0.65)
	ze := 0.6222 - 0.224*tpr
	zf := 0.0657/(tpr-0.85) - 0.037
	zg := 0.32 * math.Exp(-19.53*(tpr-1))
	zd := 0.122 * math.Exp(-11.3*(tpr-1))
	zc := ppr * (ze + zf*ppr + zg*math.Pow(ppr, 4))
	return za + zb*ppr + (1-za)*math.Exp(-zc) - zd*math.Pow(ppr/10, 4)
}

// ZHallYarborough solves the Hall-Yarborough (1973) Starling-Carnahan form
// for the reduced density y and returns z = A·Ppr/y.
func ZHallYarborough(ppr, tpr float64, s numeric.Settings) (float64, numeric.Result, error) {
	t := 1 / tpr
	a := 0.06125 * t * math.Exp(-1.2*(1-t)*(1-t))
	b := 14.76*t - 9.76*t*t + 4.85*t*t*t
	c := 90.7*t - 242.2*t*t + 42.4*t*t*t
	d := 2.18 + 2.82*t

	f := func(y float64) (float64, float64) {
		y2, y3, y4 := y*y, y*y*y, y*y*y*y
		den := 1 - y
		fy := -a*ppr + (y+y2+y3-y4)/(den*den*den) - b*y2 + c*math.Pow(y, d)
		dfy := (1+4*y+4*y2-4*y3+y4)/(den*den*den*den) - 2*b*y + c*d*math.Pow(y, d-1)
		return fy, dfy
	}
	res, err := numeric.NewtonBounded(f, 1e-3, numeric.Bounds{Lo: 0, Hi: 1}, s)
	if err != nil {
		return math.NaN(), res, err
	}
	return a * ppr / res.Root, res, nil
}

var dakA = [11]float64{0.3265, -1.0700, -0.5339, 0.01569, -0.05165, 0.5475, -0.7361, 0.1844, 0.1056, 0.6134, 0.7210}

// ZDranchukAbouKassem solves the eleven-constant Dranchuk-Abou-Kassem (1975)
// fit of the Standing-Katz chart by Newton iteration on z.
func ZDranchukAbouKassem(ppr, tpr float64, s numeric.Settings) (float64, numeric.Result, error) {
	A := dakA
	c1 := A[0] + A[1]/tpr + A[2]/math.Pow(tpr, 3) + A[3]/math.Pow(tpr, 4) + A[4]/math.Pow(tpr, 5)
	c2 := A[5] + A[6]/tpr + A[7]/(tpr*tpr)
	c3 := A[6]/tpr + A[7]/(tpr*tpr)
	t3 := tpr * tpr * tpr

	f := func(z float64) (float64, float64) {
		rho := 0.27 * ppr / (z * tpr)
		r2 := rho * rho
		e := math.Exp(-A[10] * r2)
		zeos := 1 + c1*rho + c2*r2 - A[8]*c3*math.Pow(rho, 5) + A[9]*(1+A[10]*r2)*(r2/t3)*e
		dz := c1 + 2*c2*rho - 5*A[8]*c3*math.Pow(rho, 4) + (A[9]/t3)*2*rho*(1+A[10]*r2-A[10]*A[10]*r2*r2)*e
		return z - zeos, 1 + rho/z*dz
	}
	res, err := numeric.NewtonBounded(f, 1, numeric.Bounds{Lo: 0, Hi: math.Inf(1)}, s)
	if err != nil {
		return math.NaN(), res, err
	}
	return res.Root, res, nil
}

var dprA = [8]float64{0.31506237, -1.0467099, -0.57832729, 0.53530771, -0.61232032, -0.10488813, 0.68157001, 0.68446549}

// ZDranchukPurvisRobinson solves the eight-constant Dranchuk-Purvis-Robinson
// (1974) Benedict-Webb-Rubin form by Newton iteration on z.
func ZDranchukPurvisRobinson(ppr, tpr float64, s numeric.Settings) (float64, numeric.Result, error) {
	A := dprA
	c1 := A[0] + A[1]/tpr + A[2]/math.Pow(tpr, 3)
	c2 := A[3] + A[4]/tpr
	t3 := tpr * tpr * tpr

	f := func(z float64) (float64, float64) {
		rho := 0.27 * ppr / (z * tpr)
		r2 := rho * rho
		e := math.Exp(-A[7] * r2)
		zeos := 1 + c1*rho + c2*r2 + A[4]*A[5]*math.Pow(rho, 5)/tpr + A[6]*(1+A[7]*r2)*(r2/t3)*e
		dz := c1 + 2*c2*rho + 5*A[4]*A[5]*math.Pow(rho, 4)/tpr + (A[6]/t3)*2*rho*(1+A[7]*r2-A[7]*A[7]*r2*r2)*e
		return z - zeos, 1 + rho/z*dz
	}
	res, err := numeric.NewtonBounded(f, 1, numeric.Bounds{Lo: 0, Hi: math.Inf(1)}, s)
	if err != nil {
		return math.NaN(), res, err
	}
	return res.Root, res, nil
}

// leeKeslerFluid holds the BWR constants of a Lee-Kesler (1975) fluid.
type leeKeslerFluid struct {
	b1, b2, b3, b4 float64
	c1, c2, c3, c4 float64
	d1, d2         float64
	beta, gamma    float64
}

var (
	leeKeslerSimple = leeKeslerFluid{
		b1: 0.1181193, b2: 0.265728, b3: 0.154790, b4: 0.030323,
		c1: 0.0236744, c2: 0.0186984, c3: 0.0, c4: 0.042724,
		d1: 0.155488e-4, d2: 0.623689e-4,
		beta: 0.65392, gamma: 0.060167,
	}
	leeKeslerReference = leeKeslerFluid{
		b1: 0.2026579, b2: 0.331511, b3: 0.027655, b4: 0.203488,
		c1: 0.0313885, c2: 0.0503618, c3: 0.016901, c4: 0.041577,
		d1: 0.48736e-4, d2: 0.740336e-5,
		beta: 1.226, gamma: 0.03754,
	}
)

// leeKeslerOmegaRef is the acentric factor of the reference fluid (n-octane).
const leeKeslerOmegaRef = 0.3978

// z solves ρ·Z(ρ) = Pr/Tr for the ideal reduced density ρ = 1/Vr, starting
// from the ideal-gas density.
func (fl leeKeslerFluid) z(pr, tr float64, s numeric.Settings) (float64, numeric.Result, error) {
	b := fl.b1 - fl.b2/tr - fl.b3/(tr*tr) - fl.b4/(tr*tr*tr)
	c := fl.c1 - fl.c2/tr + fl.c3/(tr*tr*tr)
	d := fl.d1 + fl.d2/tr
	e := fl.c4 / (tr * tr * tr)

	zeos := func(rho float64) float64 {
		r2 := rho * rho
		return 1 + b*rho + c*r2 + d*math.Pow(rho, 5) + e*r2*(fl.beta+fl.gamma*r2)*math.Exp(-fl.gamma*r2)
	}
	g := func(rho float64) float64 { return rho*zeos(rho) - pr/tr }

	res, err := numeric.NewtonFD(g, pr/tr, numeric.Bounds{Lo: 0, Hi: math.Inf(1)}, s)
	if err != nil {
		return math.NaN(), res, err
	}
	return zeos(res.Root), res, nil
}

// ZLeeKesler interpolates between the simple and reference fluids of the
// Lee-Kesler corresponding-states method with acentric factor omega. Use
// omega = 0 for a light natural gas.
func ZLeeKesler(ppr, tpr, omega float64, s numeric.Settings) (float64, numeric.Result, error) {
	z0, r0, err := leeKeslerSimple.z(ppr, tpr, s)
	if err != nil {
		return math.NaN(), r0, err
	}
	if omega == 0 {
		return z0, r0, nil
	}
	zr, rr, err := leeKeslerReference.z(ppr, tpr, s)
	diag := numeric.Result{Root: rr.Root, Iterations: r0.Iterations + rr.Iterations, Residual: rr.Residual}
	if err != nil {
		return math.NaN(), diag, err
	}
	return z0 + omega/leeKeslerOmegaRef*(zr-z0), diag, nil
}

var (
	papayLimits      = reducedLimits(0.2, 15, 1.05, 3)
	brillBeggsLimits = reducedLimits(0, 15, 1.2, 2.4)
	gopalLimits      = reducedLimits(0.2, 15, 1.05, 3)
)

type implicitZ func(in ZInput) (float64, numeric.Result, error)

var (
	zCatalog = pvt.NewCatalog[ZInput]("gas z-factor", validateZ)
	implicit = map[string]implicitZ{}
)

func explicitZ(f func(ppr, tpr float64) float64) func(ZInput) (float64, error) {
	return func(in ZInput) (float64, error) {
		ppr, tpr := in.Reduced()
		return f(ppr, tpr), nil
	}
}

func registerImplicit(v pvt.Variant, limits []pvt.Limit[ZInput], solve implicitZ) {
	implicit[v.Key()] = solve
	zCatalog.Register(pvt.Correlation[ZInput]{
		Variant: v,
		Func: func(in ZInput) (float64, error) {
			z, _, err := solve(in)
			return z, err
		},
		Limits: limits,
	})
}

func init() {
	zCatalog.
		Register(pvt.Correlation[ZInput]{Variant: Papay, Reference: "Papay (1968)", Func: explicitZ(ZPapay), Limits: papayLimits}).
		Register(pvt.Correlation[ZInput]{Variant: BrillBeggs, Reference: "Brill and Beggs (1974)", Func: explicitZ(ZBrillBeggs), Limits: brillBeggsLimits})

	registerImplicit(HallYarborough, reducedLimits(0, 20.5, 1, 3), func(in ZInput) (float64, numeric.Result, error) {
		ppr, tpr := in.Reduced()
		return ZHallYarborough(ppr, tpr, in.Solver)
	})

	zCatalog.Register(pvt.Correlation[ZInput]{Variant: Gopal, Reference: "Gopal (1977)", Func: explicitZ(ZGopal), Limits: gopalLimits})

	registerImplicit(DranchukAbouKassem, reducedLimits(0.2, 30, 1, 3), func(in ZInput) (float64, numeric.Result, error) {
		ppr, tpr := in.Reduced()
		return ZDranchukAbouKassem(ppr, tpr, in.Solver)
	})
	registerImplicit(DranchukPurvisRobinson, reducedLimits(0.2, 30, 1.05, 3), func(in ZInput) (float64, numeric.Result, error) {
		ppr, tpr := in.Reduced()
		return ZDranchukPurvisRobinson(ppr, tpr, in.Solver)
	})

	zCatalog.Register(pvt.Correlation[ZInput]{Variant: Shell, Reference: "Kumar (2004)", Func: explicitZ(ZShell), Limits: reducedLimits(0.2, 15, 1.1, 3)})

	registerImplicit(LeeKesler, reducedLimits(0.01, 10, 0.3, 4), func(in ZInput) (float64, numeric.Result, error) {
		ppr, tpr := in.Reduced()
		return ZLeeKesler(ppr, tpr, in.Omega, in.Solver)
	})
}

// ZCatalog returns the Z-factor registry.
func ZCatalog() *pvt.Catalog[ZInput] { return zCatalog }

// Z evaluates the Z-factor variant v.
func Z(v pvt.Variant, in ZInput, p pvt.Policy) (float64, error) {
	return zCatalog.Compute(v, in, p)
}

// ZWithStats is Z that also returns the solver diagnostic of the implicit
// variants. Explicit variants report zero iterations.
func ZWithStats(v pvt.Variant, in ZInput, p pvt.Policy) (float64, numeric.Result, error) {
	corr, err := zCatalog.Lookup(v)
	if err != nil {
		return 0, numeric.Result{}, err
	}
	solve, ok := implicit[v.Key()]
	if !ok {
		z, err := zCatalog.Evaluate(corr, in, p)
		return z, numeric.Result{Root: z}, err
	}

	var diag numeric.Result
	corr.Func = func(in ZInput) (float64, error) {
		z, res, err := solve(in)
		diag = res
		return z, err
	}
	z, err := zCatalog.Evaluate(corr, in, p)
	return z, diag, err
}
