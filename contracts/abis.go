package contracts

// ABI fragments for the deployed protocol contracts. Only the methods the
// SDK consumes are declared; the on-chain contracts carry more surface.
const (
	RegistryABI = `[
		{"name":"getControllerAddress","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
		{"name":"futureVaultCount","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
		{"name":"getFutureVaultAt","type":"function","stateMutability":"view","inputs":[{"name":"index","type":"uint256"}],"outputs":[{"name":"","type":"address"}]}
	]`

	ControllerABI = `[
		{"name":"deposit","type":"function","stateMutability":"nonpayable","inputs":[{"name":"future","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[]},
		{"name":"withdraw","type":"function","stateMutability":"nonpayable","inputs":[{"name":"future","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[]}
	]`

	FutureVaultABI = `[
		{"name":"getIBTAddress","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
		{"name":"getPTAddress","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
		{"name":"getFYTofPeriod","type":"function","stateMutability":"view","inputs":[{"name":"periodIndex","type":"uint256"}],"outputs":[{"name":"","type":"address"}]},
		{"name":"getPeriodDuration","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
		{"name":"getCurrentPeriodIndex","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
		{"name":"symbol","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]}
	]`

	ERC20ABI = `[
		{"name":"balanceOf","type":"function","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
		{"name":"allowance","type":"function","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
		{"name":"approve","type":"function","stateMutability":"nonpayable","inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
		{"name":"decimals","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]},
		{"name":"symbol","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
		{"name":"totalSupply","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]}
	]`

	AMMRegistryABI = `[
		{"name":"ammCount","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
		{"name":"getAMMAt","type":"function","stateMutability":"view","inputs":[{"name":"index","type":"uint256"}],"outputs":[{"name":"","type":"address"}]},
		{"name":"getFutureAMMPool","type":"function","stateMutability":"view","inputs":[{"name":"future","type":"address"}],"outputs":[{"name":"","type":"address"}]}
	]`

	AMMABI = `[
		{"name":"getPairTokenAddress","type":"function","stateMutability":"view","inputs":[{"name":"pairID","type":"uint64"},{"name":"tokenID","type":"uint256"}],"outputs":[{"name":"","type":"address"}]},
		{"name":"getPairTokenBalance","type":"function","stateMutability":"view","inputs":[{"name":"pairID","type":"uint64"},{"name":"tokenID","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
		{"name":"getLPTokenAddress","type":"function","stateMutability":"view","inputs":[{"name":"pairID","type":"uint64"}],"outputs":[{"name":"","type":"address"}]},
		{"name":"getTotalSupplyWithTokenID","type":"function","stateMutability":"view","inputs":[{"name":"pairID","type":"uint64"}],"outputs":[{"name":"","type":"uint256"}]},
		{"name":"getFutureAddress","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
		{"name":"getUnderlyingOfIBTAddress","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
		{"name":"getSpotPrice","type":"function","stateMutability":"view","inputs":[{"name":"pairID","type":"uint64"},{"name":"tokenIn","type":"uint256"},{"name":"tokenOut","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
		{"name":"currentPeriodIndex","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
		{"name":"paused","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"bool"}]},
		{"name":"addLiquidity","type":"function","stateMutability":"nonpayable","inputs":[{"name":"pairID","type":"uint64"},{"name":"poolAmountOut","type":"uint256"},{"name":"maxAmountsIn","type":"uint256[]"}],"outputs":[]},
		{"name":"removeLiquidity","type":"function","stateMutability":"nonpayable","inputs":[{"name":"pairID","type":"uint64"},{"name":"poolAmountIn","type":"uint256"},{"name":"minAmountsOut","type":"uint256[]"}],"outputs":[]}
	]`

	AMMRouterABI = `[
		{"name":"swapExactAmountIn","type":"function","stateMutability":"nonpayable","inputs":[{"name":"amm","type":"address"},{"name":"pairPath","type":"uint64[]"},{"name":"tokenPath","type":"uint256[]"},{"name":"tokenAmountIn","type":"uint256"},{"name":"minAmountOut","type":"uint256"},{"name":"to","type":"address"},{"name":"deadline","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
		{"name":"swapExactAmountOut","type":"function","stateMutability":"nonpayable","inputs":[{"name":"amm","type":"address"},{"name":"pairPath","type":"uint64[]"},{"name":"tokenPath","type":"uint256[]"},{"name":"maxAmountIn","type":"uint256"},{"name":"tokenAmountOut","type":"uint256"},{"name":"to","type":"address"},{"name":"deadline","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]}
	]`
)
